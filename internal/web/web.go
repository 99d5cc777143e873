package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"income-tax-tracker/internal/auth"
	"income-tax-tracker/internal/entries"
	"income-tax-tracker/internal/money"
	"income-tax-tracker/internal/tax"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"yen": money.Yen,
}).ParseFS(templateFS, "templates/*.html"))

const missingInputMessage = "概要と金額を入力してください"

type pageData struct {
	Name        string
	AuthEnabled bool
	Error       string
	Category    string
	Description string
	Amount      string
	Entries     entries.Collection
	Summary     tax.Summary
}

type loginData struct {
	Error string
	Login string
}

// Pages serves the server rendered page. When authService is nil sign-in is
// disabled and requests must already carry an owner.
type Pages struct {
	ledger      *entries.Ledger
	authService *auth.Service
	tokenTTL    time.Duration
}

func NewPages(ledger *entries.Ledger, authService *auth.Service, tokenTTL time.Duration) *Pages {
	return &Pages{
		ledger:      ledger,
		authService: authService,
		tokenTTL:    tokenTTL,
	}
}

// Register adds the page routes to mux.
func (p *Pages) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", p.index)
	mux.HandleFunc("POST /entries", p.addEntry)
	mux.HandleFunc("POST /entries/{id}/delete", p.deleteEntry)
	mux.HandleFunc("POST /settings", p.settings)
	if p.authService != nil {
		mux.HandleFunc("GET /login", p.loginPage)
		mux.HandleFunc("POST /login", p.login)
		mux.HandleFunc("POST /register", p.register)
		mux.HandleFunc("POST /logout", p.logout)
	}
}

func render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		logrus.Errorf("render %s: %v", name, err)
	}
}

// owner redirects anonymous visitors to the login page.
func (p *Pages) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner, ok := auth.OwnerFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
	return owner, ok
}

func (p *Pages) page(r *http.Request, owner string) pageData {
	list := p.ledger.Entries(owner)
	return pageData{
		Name:        auth.NameFromContext(r.Context()),
		AuthEnabled: p.authService != nil,
		Category:    "income",
		Entries:     list,
		Summary:     tax.Summarize(list, p.ledger.OtherIncome(owner)),
	}
}

func (p *Pages) index(w http.ResponseWriter, r *http.Request) {
	owner, ok := p.owner(w, r)
	if !ok {
		return
	}
	render(w, http.StatusOK, "index.html", p.page(r, owner))
}

func (p *Pages) addEntry(w http.ResponseWriter, r *http.Request) {
	owner, ok := p.owner(w, r)
	if !ok {
		return
	}
	category := r.FormValue("category")
	description := r.FormValue("description")
	amount := r.FormValue("amount")

	e, err := entries.ParseEntry(p.ledger.NextID(), category, description, amount, time.Now())
	if err != nil {
		data := p.page(r, owner)
		data.Error = missingInputMessage
		data.Category = category
		data.Description = description
		data.Amount = amount
		if !errors.Is(err, entries.ErrInvalidEntry) {
			logrus.Errorf("page add entry: %v", err)
		}
		render(w, http.StatusBadRequest, "index.html", data)
		return
	}

	p.ledger.Add(owner, e)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (p *Pages) deleteEntry(w http.ResponseWriter, r *http.Request) {
	owner, ok := p.owner(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	p.ledger.Delete(owner, id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (p *Pages) settings(w http.ResponseWriter, r *http.Request) {
	owner, ok := p.owner(w, r)
	if !ok {
		return
	}
	p.ledger.SetOtherIncome(owner, r.FormValue("other_income") != "")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (p *Pages) loginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.OwnerFromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	render(w, http.StatusOK, "login.html", loginData{})
}

func (p *Pages) login(w http.ResponseWriter, r *http.Request) {
	creds := auth.Credentials{Login: r.FormValue("login"), Password: r.FormValue("password")}
	p.signIn(w, r, creds)
}

func (p *Pages) register(w http.ResponseWriter, r *http.Request) {
	creds := auth.Credentials{Login: r.FormValue("login"), Password: r.FormValue("password")}
	if err := creds.Validate(); err != nil {
		render(w, http.StatusBadRequest, "login.html", loginData{Error: "ログインIDとパスワードを入力してください", Login: creds.Login})
		return
	}
	if _, err := p.authService.Register(r.Context(), creds.Login, creds.Password); err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			render(w, http.StatusBadRequest, "login.html", loginData{Error: "このログインIDは既に使われています", Login: creds.Login})
			return
		}
		logrus.Errorf("page register: %v", err)
		render(w, http.StatusInternalServerError, "login.html", loginData{Error: err.Error(), Login: creds.Login})
		return
	}
	logrus.Infof("user %s registered", creds.Login)
	p.signIn(w, r, creds)
}

func (p *Pages) signIn(w http.ResponseWriter, r *http.Request, creds auth.Credentials) {
	token, err := p.authService.Login(r.Context(), creds.Login, creds.Password)
	if err != nil {
		status := http.StatusUnauthorized
		message := "ログインIDまたはパスワードが違います"
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			logrus.Errorf("page login: %v", err)
			status = http.StatusInternalServerError
			message = err.Error()
		}
		render(w, status, "login.html", loginData{Error: message, Login: creds.Login})
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(p.tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// logout clears the cookie. The owner's entries stay in the ledger.
func (p *Pages) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
