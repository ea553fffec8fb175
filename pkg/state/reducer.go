package state

// Reduce applies action to s and returns the next snapshot. s is never
// modified. Actions it does not recognise return s unchanged so the reducer
// can sit on a transport shared with other consumers.
// Pointers to actions are accepted too; nil pointers are no-ops.
func Reduce(s FormState, action Action) FormState {
	switch act := deref(action).(type) {
	case SetField:
		return reduceSetField(s, act)
	case ResetField:
		next := s.withFields()
		next.Fields[act.Field] = DefaultField()
		return next
	case RemoveField:
		if !s.Has(act.Field) {
			return s
		}
		next := s.withFields()
		delete(next.Fields, act.Field)
		return next
	case AddError:
		next := s.withFields()
		next.Errors = appendMessage(s.Errors, act.Error)
		return next
	case ClearErrors:
		next := s.withFields()
		next.Errors = []string{}
		return next
	case ResetForm:
		if act.Initial == nil {
			return Empty()
		}
		return act.Initial.Clone()
	default:
		return s
	}
}

func deref(action Action) Action {
	switch act := action.(type) {
	case *SetField:
		if act != nil {
			return *act
		}
	case *ResetField:
		if act != nil {
			return *act
		}
	case *RemoveField:
		if act != nil {
			return *act
		}
	case *AddError:
		if act != nil {
			return *act
		}
	case *ClearErrors:
		if act != nil {
			return *act
		}
	case *ResetForm:
		if act != nil {
			return *act
		}
	}
	return action
}

func reduceSetField(s FormState, act SetField) FormState {
	next := s.withFields()
	field, ok := next.Fields[act.Field]
	if !ok {
		field = DefaultField()
	}
	if value, supplied := act.Value.Get(); supplied {
		field.Value = value
	}
	field.Errors = act.Error.apply(field.Errors)
	field.Warnings = act.Warning.apply(field.Warnings)
	next.Fields[act.Field] = field
	return next
}
