package ui

import "fmt"

// CallbackID refers to a closure registered while declaring a Tree. Zero is none.
type CallbackID int32

const NoCallback CallbackID = 0

type callback func(state any, post *PostBox)

// On registers fn against the application state type S and returns its id.
// Widgets keep the id and ask the Executor to run it.
func On[S any](b *Builder, fn func(s *S, post *PostBox)) CallbackID {
	return b.register(func(state any, post *PostBox) {
		s, ok := state.(*S)
		if !ok {
			panic(fmt.Sprintf("ui: callback bound to %T invoked with %T", (*S)(nil), state))
		}
		fn(s, post)
	})
}

// PostBox collects messages widgets send to the host application.
type PostBox struct {
	msgs []any
}

func (p *PostBox) Post(msg any) { p.msgs = append(p.msgs, msg) }
func (p *PostBox) Len() int     { return len(p.msgs) }

// Drain returns the pending messages and empties the box.
func (p *PostBox) Drain() []any {
	out := p.msgs
	p.msgs = nil
	return out
}

// QuitRequested asks the host to shut down.
type QuitRequested struct{}

// Executor runs registered callbacks against the live application state.
type Executor struct {
	callbacks []callback
	state     any
	post      *PostBox
	ran       int
}

// NewExecutor binds t's callbacks to state (a pointer to the application state).
func NewExecutor(t *Tree, state any, post *PostBox) *Executor {
	if post == nil {
		post = &PostBox{}
	}
	return &Executor{callbacks: t.callbacks, state: state, post: post}
}

// Run invokes the callback with the given id. Unknown ids are ignored.
func (ex *Executor) Run(id CallbackID) bool {
	if ex == nil || id <= NoCallback || int(id) > len(ex.callbacks) {
		return false
	}
	ex.callbacks[id-1](ex.state, ex.post)
	ex.ran++
	return true
}

func (ex *Executor) Post(msg any) { ex.post.Post(msg) }

// Ran reports how many callbacks this executor has run.
func (ex *Executor) Ran() int { return ex.ran }
