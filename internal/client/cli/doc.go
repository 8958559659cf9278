// Package cli implements the interactive NoteKeep client: a REPL over the
// session store and the note view-model. The session must resolve to a
// definite status before any command is reachable; note commands are
// additionally gated on an authenticated session.
package cli
