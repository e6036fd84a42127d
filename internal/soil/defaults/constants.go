package defaults

// Per-layer fallbacks applied when a value is still missing after estimation.
const (
	DefaultKL = 0.06 // /day
	DefaultXF = 1.0  // no exploration restriction
)

// Chemical analysis and sample fallbacks.
const (
	DefaultCL   = 0.0
	DefaultEC   = 0.0
	DefaultESP  = 0.0
	DefaultPH   = 7.0
	DefaultNO3N = 0.1
	DefaultNH4N = 0.01
	DefaultOC   = 0.0
)

// predictedTopLayers is the number of shallow predicted layers whose LL is set to LL15.
const predictedTopLayers = 3
