package commands

// Stack is the undo history: executed reversible commands since the last
// irreversible one, most recent last.
type Stack struct {
	items []Command
}

// NewStack returns an empty history.
func NewStack() *Stack {
	return &Stack{items: make([]Command, 0, 16)}
}

// Push records an executed command.
func (s *Stack) Push(c Command) {
	s.items = append(s.items, c)
}

// Pop removes and returns the most recent command. Popping an empty stack is
// a programming error and panics.
func (s *Stack) Pop() Command {
	if len(s.items) == 0 {
		panic("commands: undo with empty history")
	}
	c := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
	return c
}

// Peek returns the most recent command without removing it.
func (s *Stack) Peek() (Command, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	return s.items[len(s.items)-1], true
}

// CanUndo reports whether there is anything to undo.
func (s *Stack) CanUndo() bool {
	return s != nil && len(s.items) > 0
}

// Len returns the number of undoable commands.
func (s *Stack) Len() int {
	return len(s.items)
}

// Clear forgets the history.
func (s *Stack) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}
