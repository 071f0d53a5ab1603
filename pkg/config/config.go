package config

// Config provides immutable configuration options threaded from the
// CLI into the boot manager. All fields are read-only after creation;
// use options to build a new Config via New.
type Config struct {
	rootPrefix    string
	updateEFIVars bool
	imageMode     bool
	canMount      bool
	testFSType    string
	bootvarTest   bool
}

// Option configures a Config during New.
type Option func(*Config)

// WithRootPrefix sets the root prefix the boot manager binds to.
func WithRootPrefix(path string) Option {
	return func(c *Config) {
		c.rootPrefix = path
	}
}

// WithUpdateEFIVars toggles whether EFI variables are updated after a
// successful write (spec §4.5's update-EFI-vars flag).
func WithUpdateEFIVars(enabled bool) Option {
	return func(c *Config) {
		c.updateEFIVars = enabled
	}
}

// WithImageMode toggles image-mode (building an image rather than
// updating a running system).
func WithImageMode(enabled bool) Option {
	return func(c *Config) {
		c.imageMode = enabled
	}
}

// WithCanMount toggles whether the manager is allowed to mount
// filesystems during install/uninstall flows.
func WithCanMount(enabled bool) Option {
	return func(c *Config) {
		c.canMount = enabled
	}
}

// WithTestFSType records the CBM_TEST_FSTYPE value (spec §9) as read by
// the CLI. The value is not passed to pkg/efivars, which reads the env
// var itself when it performs filesystem-type detection.
func WithTestFSType(fsType string) Option {
	return func(c *Config) {
		c.testFSType = fsType
	}
}

// WithBootvarTestMode mirrors CBM_BOOTVAR_TEST_MODE=yes.
func WithBootvarTestMode(enabled bool) Option {
	return func(c *Config) {
		c.bootvarTest = enabled
	}
}

// New builds a Config, defaulting RootPrefix to "/".
func New(opts ...Option) *Config {
	c := &Config{rootPrefix: "/"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Config) Prefix() string        { return c.rootPrefix }
func (c *Config) UpdateEFIVars() bool   { return c.updateEFIVars }
func (c *Config) ImageMode() bool       { return c.imageMode }
func (c *Config) CanMount() bool        { return c.canMount }
func (c *Config) TestFSType() string    { return c.testFSType }
func (c *Config) BootvarTestMode() bool { return c.bootvarTest }
