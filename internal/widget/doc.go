// Package widget serves the pilot rank overlay for live streams.
//
// The widget has two pages. The landing page is a small configuration
// form: pick a competition, enter a task number and a pilot ID, and
// submit. The rank page looks the pilot up in the live results and
// renders the rank huge and red on a transparent background, sized for
// embedding as a browser source in OBS or similar.
//
// # Endpoints
//
//   - GET / serves the configuration form. The competition list comes
//     from the catalog; a previously remembered pilot ID is read from
//     the saved_pilot_id cookie and pre-filled.
//   - GET /get_rank?competition=...&task=...&pilot_id=... serves the
//     rank display. With remember=yes the pilot ID is stored in a
//     cookie for a year.
//
// Lookup failures still render as overlay-friendly HTML; the status
// code distinguishes missing parameters (400), unknown task pages and
// pilots (404) and upstream trouble (500).
//
// # Basic Usage
//
//	svc := widget.New(catalogService, logger)
//
//	r := chi.NewRouter()
//	svc.RegisterHTTP(r)
//	http.ListenAndServe(":5001", r)
package widget
