package decision

// Option is one labelled choice offered to the player. Deltas are applied
// by the simulation engine; Cost and ExtraScopeCost are subtracted from the
// budget, Time is subtracted from the remaining months.
type Option struct {
	Description string

	Cost int64
	// ExtraScopeCost is reserved for scope additions; no built-in option sets it
	ExtraScopeCost int64

	Time    float64
	Quality float64
	Safety  float64
	Client  float64
	Morale  float64
}

// TotalCost returns the amount the option takes off the budget
func (o Option) TotalCost() int64 {
	return o.Cost + o.ExtraScopeCost
}

// Key identifies an option within a menu ("a", "b", "c", ...)
type Key string

// String returns the key as a string
func (k Key) String() string {
	return string(k)
}

// Choice pairs a key with its option
type Choice struct {
	Key    Key
	Option Option
}
