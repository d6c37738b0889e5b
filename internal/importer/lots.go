package importer

import (
	"context"
	"fmt"
)

// TailleLotDefaut is the chunk size for bulk inserts and deletes.
const TailleLotDefaut = 10

// ErreurLot reports one failed chunk; the other chunks are unaffected.
type ErreurLot struct {
	Lot int // 1-based
	Err error
}

func (e ErreurLot) Error() string { return fmt.Sprintf("lot %d: %v", e.Lot, e.Err) }

func (e ErreurLot) Unwrap() error { return e.Err }

// ParLots applies fn to consecutive chunks of items. Each chunk succeeds or
// fails on its own; the count of items in successful chunks is returned with
// the list of failures. A cancelled context stops before the next chunk.
func ParLots[T any](ctx context.Context, items []T, taille int, fn func(ctx context.Context, lot []T) error) (int, []ErreurLot) {
	if taille <= 0 {
		taille = TailleLotDefaut
	}
	ok := 0
	var erreurs []ErreurLot
	for i := 0; i < len(items); i += taille {
		n := i/taille + 1
		if err := ctx.Err(); err != nil {
			erreurs = append(erreurs, ErreurLot{Lot: n, Err: err})
			break
		}
		fin := min(i+taille, len(items))
		if err := fn(ctx, items[i:fin]); err != nil {
			erreurs = append(erreurs, ErreurLot{Lot: n, Err: err})
			continue
		}
		ok += fin - i
	}
	return ok, erreurs
}
