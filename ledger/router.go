package ledger

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowswap"
)

// Router dispatches instructions to the program registered under the
// instruction program identity.
type Router struct {
	programs map[solana.PublicKey]escrowswap.Program
}

// NewRouter returns an empty registry.
func NewRouter() *Router {
	return &Router{
		programs: make(map[solana.PublicKey]escrowswap.Program),
	}
}

// Register adds a program. Registering the same identity twice panics.
func (r *Router) Register(id solana.PublicKey, p escrowswap.Program) {
	if _, ok := r.programs[id]; ok {
		panic(fmt.Sprintf("program %s is already registered", id))
	}
	r.programs[id] = p
}

// Route returns the program registered under given identity, or nil.
func (r *Router) Route(id solana.PublicKey) escrowswap.Program {
	return r.programs[id]
}
