// Package store is a small action-dispatch transport. Reducers are registered
// under named slots; every dispatched action is offered to every slot, passes
// through the middleware chain first, and wakes subscribers once all slots
// have been reduced. Slots never see each other's state, so a slot reducer
// must treat actions it does not recognise as no-ops.
package store
