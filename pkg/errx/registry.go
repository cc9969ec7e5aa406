package errx

// RegistryEntry describes a registered error code.
type RegistryEntry struct {
	Code        string
	Description string
}

// Error codes follow a stable 5-digit scheme where the first two digits are the
// domain and the last three digits are reserved for subcodes.
const (
	CodeCLI       = "60000"
	CodeCluster   = "61000"
	CodeNamespace = "62000"
	CodeDeploy    = "63000"
	CodeStatus    = "64000"
	CodeConfig    = "65000"
)

const (
	DescCLI       = "CLI/argument validation error"
	DescCluster   = "Cluster connection error"
	DescNamespace = "Namespace error"
	DescDeploy    = "Deploy error"
	DescStatus    = "Status/inspection error"
	DescConfig    = "Configuration error"
)

var registryEntries = []RegistryEntry{
	{Code: CodeCLI, Description: DescCLI},
	{Code: CodeCluster, Description: DescCluster},
	{Code: CodeNamespace, Description: DescNamespace},
	{Code: CodeDeploy, Description: DescDeploy},
	{Code: CodeStatus, Description: DescStatus},
	{Code: CodeConfig, Description: DescConfig},
}

var registryMap = map[string]string{
	CodeCLI:       DescCLI,
	CodeCluster:   DescCluster,
	CodeNamespace: DescNamespace,
	CodeDeploy:    DescDeploy,
	CodeStatus:    DescStatus,
	CodeConfig:    DescConfig,
}

// ErrorRegistry returns the error registry in deterministic order.
// This provides a list of all registered error codes and their descriptions.
func ErrorRegistry() []RegistryEntry {
	entries := make([]RegistryEntry, len(registryEntries))
	copy(entries, registryEntries)
	return entries
}

// DescriptionFor returns the registry description for a code.
func DescriptionFor(code string) (string, bool) {
	desc, ok := registryMap[code]
	return desc, ok
}

// IsValidCode checks if the given error code is registered.
func IsValidCode(code string) bool {
	_, ok := registryMap[code]
	return ok
}
