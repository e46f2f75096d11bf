package domain

// SectionTag identifies a record section in an ANAREDE case file.
type SectionTag string

const (
	SectionTitle               SectionTag = "TITU"
	SectionBus                 SectionTag = "DBAR"
	SectionLine                SectionTag = "DLIN"
	SectionGenerator           SectionTag = "DGER"
	SectionSeriesCompensator   SectionTag = "DCSC"
	SectionReactiveCompensator SectionTag = "DCER"
	SectionShuntBank           SectionTag = "DBSH"
	SectionShuntDevice         SectionTag = "DSHL"
)

// SupportedSections lists the section tags the scanner parses into records.
var SupportedSections = []SectionTag{
	SectionTitle,
	SectionBus,
	SectionLine,
	SectionGenerator,
	SectionSeriesCompensator,
	SectionReactiveCompensator,
	SectionShuntBank,
	SectionShuntDevice,
}

// UnsupportedSections lists section tags that are recognized as headers but
// whose bodies are discarded. They must be known so their data lines are not
// misrouted into a preceding supported section.
var UnsupportedSections = []SectionTag{
	"DOPC", "QLIM", "DGLT", "DARE", "DGBT", "DGGB", "DTPF", "DCAR",
	"DMFL", "DCTR", "DELO", "DCBA", "DCLI", "DCNV", "DCCV",
}

// ConnState is the connectivity state of a network element.
type ConnState string

const (
	Connected    ConnState = "L"
	Disconnected ConnState = "D"
)

// IsConnected reports whether the state counts as in-service. Anything other
// than an explicit "D" is treated as connected, matching the format default.
func (s ConnState) IsConnected() bool {
	return s != Disconnected
}

// Format conversion constants. These are fixed conventions of the ANAREDE
// input and the AMPL output, not tunables.
const (
	Infinity       = 99999.0
	NegInfinity    = -99999.0
	BasePowerMVA   = 100.0
	PercentDivisor = 100.0
	KVDivisor      = 1000.0
)

// SeriesControlModes maps DCSC control-mode letter codes to the integer
// enumeration used by the case-modeling output.
var SeriesControlModes = map[string]int{
	"X": 1, // fixed reactance
	"P": 2, // constant power flow
}

// ReactiveControlModes maps DCER control-mode letter codes to the integer
// enumeration used by the case-modeling output.
var ReactiveControlModes = map[string]int{
	"I": 1, // current control
	"Q": 2, // reactive power control
	"V": 3, // voltage control
}

// DefaultControlMode is emitted for unrecognized control-mode codes.
const DefaultControlMode = 1
