package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/farmhouse/internal/application/usecases"
	"github.com/example/farmhouse/internal/domain/booking"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type Server struct {
	addr     string
	sessions *SessionManager
	svc      usecases.ReservationService
	rooms    booking.Registry
	gateHash []byte
	tmpl     *template.Template
	backend  string
	log      zerolog.Logger
}

func New(addr string, sessions *SessionManager, svc usecases.ReservationService,
	rooms booking.Registry, gateHash []byte, tmpl *template.Template,
	backend string, log zerolog.Logger) *Server {
	return &Server{
		addr: addr, sessions: sessions, svc: svc, rooms: rooms,
		gateHash: gateHash, tmpl: tmpl, backend: backend, log: log,
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/", s.requireGate(s.handleBoard))
	mux.HandleFunc("/reservations", s.requireGate(s.handleCreate))
	mux.HandleFunc("/reservations/edit", s.requireGate(s.handleEdit))
	mux.HandleFunc("/reservations/delete", s.requireGate(s.handleDelete))
	mux.HandleFunc("/calendar", s.requireGate(s.handleCalendar))
	return s.logging(mux)
}

func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.log.Info().Str("addr", s.addr).Str("backend", s.backend).Msg("listening")
	return srv.ListenAndServe()
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().Str("method", r.Method).Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).Msg("request")
	})
}

func (s *Server) requireGate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.sessions.HasGate(r) {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next(w, r)
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("content-type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func (s *Server) reqCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 5*time.Second)
}

type loginData struct {
	Error string
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, "login.html", loginData{})
	case http.MethodPost:
		_ = r.ParseForm()
		password := r.FormValue("password")
		if bcrypt.CompareHashAndPassword(s.gateHash, []byte(password)) != nil {
			s.render(w, "login.html", loginData{Error: "Incorrect password"})
			return
		}
		if err := s.sessions.SetGate(w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

type roomGroup struct {
	Room         string
	Reservations []booking.Reservation
}

type boardData struct {
	Rooms   booking.Registry
	ByRoom  []roomGroup
	Backend string

	// form round-trip state
	Form      formValues
	Error     string
	Conflicts []booking.Reservation

	// availability check results, when a range was queried
	Checked      bool
	CheckRange   string
	Availability booking.Availability
}

type formValues struct {
	Name   string
	Room   string
	Start  string
	End    string
	Status string
	Notes  string
}

func (s *Server) boardData(ctx context.Context) (boardData, error) {
	rows, err := s.svc.List(ctx)
	if err != nil {
		return boardData{}, err
	}
	data := boardData{
		Rooms:   s.rooms,
		Backend: s.backend,
		Form:    formValues{Status: string(booking.StatusHopeful)},
	}
	byRoom := make(map[string][]booking.Reservation)
	for _, res := range rows {
		byRoom[res.Room] = append(byRoom[res.Room], res)
	}
	for _, room := range s.rooms {
		data.ByRoom = append(data.ByRoom, roomGroup{Room: room, Reservations: byRoom[room]})
	}
	return data, nil
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	ctx, cancel := s.reqCtx(r)
	defer cancel()

	data, err := s.boardData(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// optional availability check for a candidate range
	q := r.URL.Query()
	if q.Get("start") != "" && q.Get("end") != "" {
		dr, err := booking.NewDateRange(q.Get("start"), q.Get("end"))
		if err != nil || !dr.Valid() {
			data.Error = "Availability check needs a departure after the arrival."
		} else {
			rows, err := s.svc.List(ctx)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			data.Checked = true
			data.CheckRange = dr.String()
			data.Availability = booking.RoomsAvailable(rows, s.rooms, dr)
			data.Form.Start = q.Get("start")
			data.Form.End = q.Get("end")
		}
	}
	s.render(w, "board.html", data)
}

func parseDraft(r *http.Request) (usecases.Draft, formValues, error) {
	_ = r.ParseForm()
	form := formValues{
		Name:   strings.TrimSpace(r.FormValue("name")),
		Room:   r.FormValue("room"),
		Start:  r.FormValue("start"),
		End:    r.FormValue("end"),
		Status: r.FormValue("status"),
		Notes:  strings.TrimSpace(r.FormValue("notes")),
	}
	dr, err := booking.NewDateRange(form.Start, form.End)
	if err != nil {
		return usecases.Draft{}, form, err
	}
	return usecases.Draft{
		Name:   form.Name,
		Room:   form.Room,
		Range:  dr,
		Status: booking.Status(form.Status),
		Notes:  form.Notes,
	}, form, nil
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := s.reqCtx(r)
	defer cancel()

	draft, form, parseErr := parseDraft(r)
	force := r.FormValue("force") == "1"

	renderWith := func(errMsg string, conflicts []booking.Reservation) {
		data, err := s.boardData(ctx)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data.Form = form
		data.Error = errMsg
		data.Conflicts = conflicts
		s.render(w, "board.html", data)
	}

	if parseErr != nil {
		renderWith("Arrival and departure must be valid dates.", nil)
		return
	}

	_, err := s.svc.Create(ctx, draft, force)
	if err != nil {
		var verr *booking.ValidationError
		var cerr *booking.ConflictError
		switch {
		case errors.As(err, &verr):
			renderWith(verr.Error(), nil)
		case errors.As(err, &cerr):
			renderWith("", cerr.Conflicts)
		default:
			s.log.Error().Err(err).Msg("create reservation failed")
			renderWith("Failed to save: "+err.Error(), nil)
		}
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

type editData struct {
	ID        string
	Rooms     booking.Registry
	Form      formValues
	Error     string
	Conflicts []booking.Reservation
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.reqCtx(r)
	defer cancel()

	id := r.URL.Query().Get("id")
	if id == "" {
		_ = r.ParseForm()
		id = r.FormValue("id")
	}

	switch r.Method {
	case http.MethodGet:
		res, err := s.svc.Get(ctx, id)
		if err != nil {
			if errors.Is(err, booking.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		s.render(w, "edit.html", editData{
			ID:    res.ID,
			Rooms: s.rooms,
			Form: formValues{
				Name:   res.Name,
				Room:   res.Room,
				Start:  booking.FormatDate(res.StartDate),
				End:    booking.FormatDate(res.EndDate),
				Status: string(res.Status),
				Notes:  res.Notes,
			},
		})
	case http.MethodPost:
		draft, form, parseErr := parseDraft(r)
		force := r.FormValue("force") == "1"
		if parseErr != nil {
			s.render(w, "edit.html", editData{
				ID: id, Rooms: s.rooms, Form: form,
				Error: "Arrival and departure must be valid dates.",
			})
			return
		}
		_, err := s.svc.Update(ctx, id, draft, force)
		if err != nil {
			var verr *booking.ValidationError
			var cerr *booking.ConflictError
			switch {
			case errors.Is(err, booking.ErrNotFound):
				http.NotFound(w, r)
			case errors.As(err, &verr):
				s.render(w, "edit.html", editData{ID: id, Rooms: s.rooms, Form: form, Error: verr.Error()})
			case errors.As(err, &cerr):
				s.render(w, "edit.html", editData{ID: id, Rooms: s.rooms, Form: form, Conflicts: cerr.Conflicts})
			default:
				s.log.Error().Err(err).Str("id", id).Msg("update reservation failed")
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := s.reqCtx(r)
	defer cancel()

	_ = r.ParseForm()
	id := r.FormValue("id")
	if err := s.svc.Remove(ctx, id); err != nil && !errors.Is(err, booking.ErrNotFound) {
		s.log.Error().Err(err).Str("id", id).Msg("delete reservation failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

type calendarData struct {
	Year       int
	Month      time.Month
	MonthName  string
	Weeks      []booking.Week
	Days       map[string]*booking.DaySummary
	TotalRooms int
	PrevYear   int
	PrevMonth  int
	NextYear   int
	NextMonth  int
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.reqCtx(r)
	defer cancel()

	now := time.Now().UTC()
	year, month := now.Year(), now.Month()
	if y, err := strconv.Atoi(r.URL.Query().Get("y")); err == nil {
		year = y
	}
	if m, err := strconv.Atoi(r.URL.Query().Get("m")); err == nil && m >= 1 && m <= 12 {
		month = time.Month(m)
	}

	rows, err := s.svc.List(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)

	s.render(w, "calendar.html", calendarData{
		Year:       year,
		Month:      month,
		MonthName:  month.String(),
		Weeks:      booking.MonthGrid(year, month),
		Days:       booking.Occupancy(rows, s.rooms),
		TotalRooms: len(s.rooms),
		PrevYear:   prev.Year(),
		PrevMonth:  int(prev.Month()),
		NextYear:   next.Year(),
		NextMonth:  int(next.Month()),
	})
}
