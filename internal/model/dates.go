package model

// DateLayout is the wire format for DATE parameters and inputs.
const DateLayout = "2006-01-02"
