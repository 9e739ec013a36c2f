package authflow

// Environment selects which frontend origin the browser is sent back to
// after the callback completes.
type Environment string

const (
	EnvLocal      Environment = "local"
	EnvProduction Environment = "production"
)

// ParseEnvironment maps a query parameter onto an Environment. Anything
// other than "production" falls back to local, matching the frontend's
// default.
func ParseEnvironment(s string) Environment {
	if s == string(EnvProduction) {
		return EnvProduction
	}
	return EnvLocal
}

func (e Environment) String() string {
	return string(e)
}
