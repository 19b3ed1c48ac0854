package vm

// Value is the numeric type the machine computes with. The instruction
// set is arithmetic-only, so a plain IEEE-754 double is the whole value
// model: division by zero yields infinity or NaN rather than a fault.
type Value = float64
