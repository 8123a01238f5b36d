package web

// ViewKind tags the page variant a request resolves to.
type ViewKind int

const (
	// ViewHome is the landing page: create-event form plus event list.
	ViewHome ViewKind = iota
	// ViewForm is the attendee sign-in form for one event.
	ViewForm
	// ViewAdmin is the admin overview over all events.
	ViewAdmin
	// ViewUnauthorized is the admin mode with a wrong or missing key.
	ViewUnauthorized
	// ViewNotFound is an unresolvable parameter combination.
	ViewNotFound
)

// View is the resolved page variant. EventID is set for ViewForm.
type View struct {
	Kind    ViewKind
	EventID string
}

// ResolveView maps the request's mode, event, and key parameters to a page
// variant. It is a pure function; the renderer stays a thin layer over its
// result. Requests are stateless, so the variant is re-derived per request.
func ResolveView(mode, eventID, key string, authorize func(string) bool) View {
	switch {
	case mode == "admin":
		if !authorize(key) {
			return View{Kind: ViewUnauthorized}
		}
		return View{Kind: ViewAdmin, EventID: eventID}
	case eventID != "":
		// Any mode other than admin falls back to the form when an
		// event is given; scanners sometimes drop the mode parameter.
		return View{Kind: ViewForm, EventID: eventID}
	case mode == "":
		return View{Kind: ViewHome}
	default:
		return View{Kind: ViewNotFound}
	}
}
