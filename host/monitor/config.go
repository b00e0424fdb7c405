package monitor

import (
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/viper"

	"monoclock/core"
	"monoclock/host/serial"
)

// Config is the clock monitor's configuration.
type Config struct {
	Device       string
	Baud         int
	PeriodCycles uint32
	Tolerance    uint32
	MaxLate      uint32
	TimerFreq    uint32
	MaxSamples   uint64
}

// Config keys
const (
	KeyDevice     = "serial.device"
	KeyBaud       = "serial.baud"
	KeyPeriod     = "clock.period_cycles"
	KeyTolerance  = "clock.tolerance_cycles"
	KeyMaxLate    = "clock.max_late_cycles"
	KeyTimerFreq  = "clock.timer_freq"
	KeyMaxSamples = "watch.max_samples"
)

// DefaultMaxLate is how late, in timer cycles, a deadline may be served
// before it is flagged: 256us at 16 MHz.
const DefaultMaxLate = 4096

// SetDefaults registers the default for every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDevice, "/dev/ttyUSB0")
	v.SetDefault(KeyBaud, serial.DefaultBaud)
	v.SetDefault(KeyPeriod, core.ReportPeriodCycles)
	v.SetDefault(KeyTolerance, 0)
	v.SetDefault(KeyMaxLate, DefaultMaxLate)
	v.SetDefault(KeyTimerFreq, core.TimerFreq)
	v.SetDefault(KeyMaxSamples, 0)
}

// LoadConfig reads configuration into v from defaults, MONOCLOCK_* environment
// variables and, if file is not empty, a config file.
func LoadConfig(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("MONOCLOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, oops.Wrapf(err, "failed to read config file %s", file)
		}
	}

	cfg := &Config{
		Device:       v.GetString(KeyDevice),
		Baud:         v.GetInt(KeyBaud),
		PeriodCycles: v.GetUint32(KeyPeriod),
		Tolerance:    v.GetUint32(KeyTolerance),
		MaxLate:      v.GetUint32(KeyMaxLate),
		TimerFreq:    v.GetUint32(KeyTimerFreq),
		MaxSamples:   v.GetUint64(KeyMaxSamples),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the tracker cannot work with.
func (c *Config) Validate() error {
	if c.PeriodCycles == 0 {
		return oops.Errorf("%s must be positive", KeyPeriod)
	}
	if c.Tolerance >= c.PeriodCycles/2 {
		return oops.Errorf("%s must be below half the period (%d)", KeyTolerance, c.PeriodCycles/2)
	}
	if c.MaxLate == 0 || c.MaxLate >= 0x8000 {
		return oops.Errorf("%s must be between 1 and 32767", KeyMaxLate)
	}
	if c.TimerFreq == 0 {
		return oops.Errorf("%s must be positive", KeyTimerFreq)
	}
	if c.Baud <= 0 {
		return oops.Errorf("%s must be positive", KeyBaud)
	}
	return nil
}

// SerialConfig returns the port settings.
func (c *Config) SerialConfig() *serial.Config {
	sc := serial.DefaultConfig(c.Device)
	sc.Baud = c.Baud
	return sc
}

// NewTracker returns a tracker for the configured period.
func (c *Config) NewTracker() *Tracker {
	return NewTracker(
		core.DurationFromCycles(c.PeriodCycles),
		core.DurationFromCycles(c.Tolerance),
		core.DurationFromCycles(c.MaxLate),
	)
}
