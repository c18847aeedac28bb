package profile

// Operation kinds.
const (
	KindExternal    = "external"
	KindForward     = "forward"
	KindUnsupported = "unsupported"
	KindNoOp        = "noop"
)

// ValidKinds lists the accepted values of Operation.Kind.
var ValidKinds = []string{KindExternal, KindForward, KindUnsupported, KindNoOp}

// Profile describes one board: the identifier the process must be bound to,
// the tools it needs, and the operations it offers.
type Profile struct {
	Platform     string      `yaml:"platform" json:"platform"`
	Description  string      `yaml:"description,omitempty" json:"description,omitempty"`
	Device       string      `yaml:"device,omitempty" json:"device,omitempty"`
	GatewareSize int64       `yaml:"gateware_size,omitempty" json:"gateware_size,omitempty"`
	SPIFlash     *SPIFlash   `yaml:"spiflash,omitempty" json:"spiflash,omitempty"`
	OpenOCD      OpenOCD     `yaml:"openocd" json:"openocd"`
	Tools        []Tool      `yaml:"tools,omitempty" json:"tools,omitempty"`
	Operations   []Operation `yaml:"operations" json:"operations"`
}

// SPIFlash describes the configuration flash fitted to the board.
type SPIFlash struct {
	Model      string `yaml:"model" json:"model"`
	TotalSize  int64  `yaml:"total_size,omitempty" json:"total_size,omitempty"`
	PageSize   int64  `yaml:"page_size,omitempty" json:"page_size,omitempty"`
	SectorSize int64  `yaml:"sector_size,omitempty" json:"sector_size,omitempty"`
}

// OpenOCD holds the JTAG adapter settings.
type OpenOCD struct {
	Config string `yaml:"config" json:"config"`
}

// Tool is an external program the profile depends on.
type Tool struct {
	Name        string   `yaml:"name" json:"name"`
	Required    bool     `yaml:"required,omitempty" json:"required,omitempty"`
	MinVersion  string   `yaml:"min_version,omitempty" json:"min_version,omitempty"`
	VersionArgs []string `yaml:"version_args,omitempty" json:"version_args,omitempty"`
}

// Operation is one registry entry as written in the profile. Which of Tool,
// Args, Target and Message apply depends on Kind.
type Operation struct {
	Name        string   `yaml:"name" json:"name"`
	Kind        string   `yaml:"kind" json:"kind"`
	Tool        string   `yaml:"tool,omitempty" json:"tool,omitempty"`
	Args        []string `yaml:"args,omitempty" json:"args,omitempty"`
	Target      string   `yaml:"target,omitempty" json:"target,omitempty"`
	Message     string   `yaml:"message,omitempty" json:"message,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
}

// Operation returns the named operation, or false if the profile has none.
func (p *Profile) Operation(name string) (Operation, bool) {
	for _, op := range p.Operations {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}
