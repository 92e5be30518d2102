package motion

// Limits holds the firmware motion bounds used by the Mapper.
// Values are in the firmware's native units (mm/min for jerk, mm/s² for
// acceleration).
type Limits struct {
	JerkMin      int `yaml:"jerk_min" json:"jerk_min"`
	JerkMax      int `yaml:"jerk_max" json:"jerk_max"`
	AccelMin     int `yaml:"accel_min" json:"accel_min"`
	AccelMax     int `yaml:"accel_max" json:"accel_max"`
	TravelAccel  int `yaml:"travel_accel" json:"travel_accel"`
	RetractAccel int `yaml:"retract_accel" json:"retract_accel"`
	ZJerk        int `yaml:"z_jerk" json:"z_jerk"`
	EJerk        int `yaml:"e_jerk" json:"e_jerk"`
}

// DefaultLimits returns the stock tuning ranges.
func DefaultLimits() Limits {
	return Limits{
		JerkMin:      300,
		JerkMax:      1500,
		AccelMin:     600,
		AccelMax:     4000,
		TravelAccel:  5000,
		RetractAccel: 5000,
		ZJerk:        60,
		EJerk:        300,
	}
}
