package cmdconfig

import (
	"errors"
	"fmt"
	"time"

	"github.com/papercomputeco/ores/pkg/dotdir"
	"github.com/papercomputeco/ores/pkg/responses"
)

// ErrNoPreviousResponse is returned by --continue when no response id was
// remembered by an earlier --store run.
var ErrNoPreviousResponse = errors.New("no previous response to continue: run with --store first")

// PreviousResponseID returns the response id remembered in the .ores
// directory.
func PreviousResponseID(configDir string) (string, error) {
	state, err := dotdir.NewManager().LoadState(configDir)
	if err != nil {
		return "", fmt.Errorf("loading state: %w", err)
	}
	if state == nil || state.LastResponseID == "" {
		return "", ErrNoPreviousResponse
	}
	return state.LastResponseID, nil
}

// RememberResponse stores the id of r for a later --continue.
func RememberResponse(configDir string, r *responses.ResponseResource) error {
	if r == nil || r.ID == "" {
		return nil
	}

	state := &dotdir.State{
		LastResponseID: r.ID,
		Model:          r.Model,
		UpdatedAt:      time.Now().UTC(),
	}
	if err := dotdir.NewManager().SaveState(state, configDir); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}
