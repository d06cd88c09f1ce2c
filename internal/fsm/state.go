package fsm

// State identifies one screen/mode of the application.
type State int

// Event identifies an action that may move the machine between states.
type Event int

// StateFn handles one event in one state. It returns the next state and
// whether a transition actually happened.
type StateFn func() (State, bool)

// Entity is a finite state machine carrying the application data it
// drives. The machine table is indexed by [current state][event].
type Entity[T any] struct {
	Data *T

	initialState State
	currentState State
	machine      [][]StateFn
}

func (entity *Entity[T]) SetInitialState(initialState State) {
	entity.initialState = initialState
	entity.currentState = initialState
}

func (entity *Entity[T]) SetMachine(m [][]StateFn) {
	entity.machine = m
}

func (entity *Entity[T]) GetCurrentState() State {
	return entity.currentState
}

func (entity *Entity[T]) GetInitialState() State {
	return entity.initialState
}

// Dispatch runs the handler for event e in the current state. Events
// outside the machine table are ignored rather than panicking.
func (entity *Entity[T]) Dispatch(e Event) {
	if int(entity.currentState) >= len(entity.machine) {
		return
	}
	row := entity.machine[entity.currentState]
	if int(e) >= len(row) || row[e] == nil {
		return
	}

	next, transition := row[e]()
	if transition {
		entity.currentState = next
	}
}
