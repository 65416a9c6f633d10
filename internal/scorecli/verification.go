package scorecli

import (
	"fmt"
	"slices"

	ttr "github.com/okian/boardscore/internal/domain/tickettoride"
)

// verifyResults checks that a server scored the sheet the same way.
func verifyResults(local, remote ttr.Result) error {
	if len(local.Players) != len(remote.Players) {
		return fmt.Errorf("%w: %d players, server has %d", ErrMismatch, len(local.Players), len(remote.Players))
	}
	for i := range local.Players {
		if local.Players[i].Score != remote.Players[i].Score {
			return fmt.Errorf("%w: player %d scored %d, server says %d",
				ErrMismatch, i+1, local.Players[i].Score, remote.Players[i].Score)
		}
	}
	if !slices.Equal(local.Winners, remote.Winners) {
		return fmt.Errorf("%w: winners %v, server says %v", ErrMismatch, local.Winners, remote.Winners)
	}
	return nil
}
