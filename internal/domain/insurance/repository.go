package insurance

import "context"

// BracketRepository is the read-only bracket-table boundary. LatestImport
// returns ErrNoBracketImport when no table was ever uploaded; BracketByLevel
// returns ErrBracketNotFound for a level absent from the import.
type BracketRepository interface {
	LatestImport(ctx context.Context) (BracketImport, error)
	BracketByLevel(ctx context.Context, importID string, level int) (Bracket, error)
}
