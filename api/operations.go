package api

// Operations records which verbs the server reports for a resource type.
type Operations struct {
	Create           bool
	Get              bool
	List             bool
	Watch            bool
	Delete           bool
	DeleteCollection bool
	Update           bool
	Patch            bool
	// Other holds verbs this client does not recognize, in the order the
	// server reported them. Nothing the server says is dropped.
	Other []string
}

// EmptyOperations returns an Operations value with every verb disabled.
func EmptyOperations() Operations {
	return Operations{}
}

// OperationsFromVerbs folds a discovery verb list into an Operations value.
func OperationsFromVerbs(verbs []string) Operations {
	ops := EmptyOperations()
	for _, verb := range verbs {
		switch verb {
		case "create":
			ops.Create = true
		case "get":
			ops.Get = true
		case "list":
			ops.List = true
		case "watch":
			ops.Watch = true
		case "delete":
			ops.Delete = true
		case "deletecollection":
			ops.DeleteCollection = true
		case "update":
			ops.Update = true
		case "patch":
			ops.Patch = true
		default:
			ops.Other = append(ops.Other, verb)
		}
	}
	return ops
}

// Supports reports whether the named verb is enabled. Verb names use the
// discovery spelling ("deletecollection", not "delete-collection");
// unrecognized names are looked up in Other.
func (ops Operations) Supports(verb string) bool {
	switch verb {
	case "create":
		return ops.Create
	case "get":
		return ops.Get
	case "list":
		return ops.List
	case "watch":
		return ops.Watch
	case "delete":
		return ops.Delete
	case "deletecollection":
		return ops.DeleteCollection
	case "update":
		return ops.Update
	case "patch":
		return ops.Patch
	}
	for _, other := range ops.Other {
		if other == verb {
			return true
		}
	}
	return false
}
