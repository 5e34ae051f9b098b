package throughput

import "github.com/chris-alexander-pop/system-design-library/pkg/fsm"

// State is one of the six per-(sub_id, SUPI) throughput FSM states.
type State string

const (
	StateInitializing          State = "INITIALIZING"
	StateWaitingForGMLCNotif   State = "WAITING_FOR_GMLC_NOTIF"
	StateWaitingForRANNotif    State = "WAITING_FOR_RAN_NOTIF"
	StatePredictingThroughput  State = "PREDICTING_THROUGHPUT"
	StateSendingAnalyticsNotif State = "SENDING_ANALYTICS_NOTIF"
	StateDeleting              State = "DELETING"
)

// Transition is a named FSM event.
type Transition string

const (
	TransitionInitializationDone Transition = "INITIALIZATION_DONE"
	TransitionAllNotifsReceived  Transition = "ALL_NOTIFS_RECEIVED"
	TransitionWaitingForNotifs   Transition = "WAITING_FOR_NOTIFS"
	TransitionPredictionDone     Transition = "PREDICTION_DONE"
	TransitionAnalyticsNotifSent Transition = "ANALYTICS_NOTIF_SENT"
	TransitionDeletionRequested  Transition = "DELETION_REQUESTED"
)

// allStates lists every state DELETION_REQUESTED must be wired from —
// the table has no true wildcard, so the "* -> DELETING" rule in the
// design is expanded into one edge per state here.
var allStates = []State{
	StateInitializing,
	StateWaitingForGMLCNotif,
	StateWaitingForRANNotif,
	StatePredictingThroughput,
	StateSendingAnalyticsNotif,
	StateDeleting,
}

// table is shared read-only across every per-(sub_id, SUPI) Machine.
var table = buildTable()

func buildTable() *fsm.Table[State, Transition] {
	t := fsm.NewTable[State, Transition]().
		Add(StateInitializing, TransitionInitializationDone, StateWaitingForGMLCNotif).
		Add(StateWaitingForGMLCNotif, TransitionAllNotifsReceived, StatePredictingThroughput).
		Add(StateWaitingForGMLCNotif, TransitionWaitingForNotifs, StateWaitingForRANNotif).
		Add(StateWaitingForRANNotif, TransitionAllNotifsReceived, StatePredictingThroughput).
		Add(StateWaitingForRANNotif, TransitionWaitingForNotifs, StateWaitingForGMLCNotif).
		Add(StatePredictingThroughput, TransitionPredictionDone, StateSendingAnalyticsNotif).
		Add(StateSendingAnalyticsNotif, TransitionAnalyticsNotifSent, StateWaitingForGMLCNotif)

	for _, s := range allStates {
		t.Add(s, TransitionDeletionRequested, StateDeleting)
	}
	return t
}

// newMachine creates a per-(sub_id, SUPI) FSM starting at INITIALIZING.
func newMachine() *fsm.Machine[State, Transition] {
	return fsm.NewMachine(table, StateInitializing)
}
