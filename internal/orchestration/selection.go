package orchestration

import "github.com/agbru/chunkbench/internal/dispatch"

// AllModes selects every strategy.
const AllModes = "all"

// SelectModes determines which modes should be executed for a CLI mode name.
// "all" expands to every mode in presentation order.
//
// Parameters:
//   - name: A mode name or "all".
//
// Returns:
//   - []dispatch.Mode: The modes to run.
//   - error: A configuration error for an unknown name.
func SelectModes(name string) ([]dispatch.Mode, error) {
	if name == AllModes {
		return dispatch.Modes(), nil
	}
	mode, err := dispatch.ParseMode(name)
	if err != nil {
		return nil, err
	}
	return []dispatch.Mode{mode}, nil
}
