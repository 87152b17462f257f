package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"finance-tracker/internal/auth"
	"finance-tracker/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users        service.UserService
	ledger       service.LedgerService
	exporter     service.HistoryExporter
	sessions     *auth.Sessions
	secureCookie bool
	templates    *template.Template
	logger       *logrus.Logger
}

// NewHandler builds the web handler. exporter may be nil, which disables
// spreadsheet downloads.
func NewHandler(users service.UserService, ledger service.LedgerService, exporter service.HistoryExporter, sessions *auth.Sessions, secureCookie bool, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:        users,
		ledger:       ledger,
		exporter:     exporter,
		sessions:     sessions,
		secureCookie: secureCookie,
		templates:    loadTemplates(),
		logger:       logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(h.templates)
	router.Use(noCacheMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	router.GET("/login", h.loginForm)
	router.POST("/login", h.login)
	router.GET("/logout", h.logout)
	router.GET("/register", h.registerForm)
	router.POST("/register", h.register)

	authed := router.Group("/", h.requireUser())
	{
		authed.GET("/", h.index)
		authed.GET("/quote", h.page("quote.html", "Quote"))
		authed.POST("/quote", h.quote)
		authed.GET("/buy", h.page("buy.html", "Buy"))
		authed.POST("/buy", h.buy)
		authed.GET("/sell", h.sellForm)
		authed.POST("/sell", h.sell)
		authed.GET("/history", h.history)
		authed.GET("/add_cash", h.page("add_cash.html", "Add Cash"))
		authed.POST("/add_cash", h.addCash)
		authed.GET("/change_password", h.page("change_password.html", "Change Password"))
		authed.POST("/change_password", h.changePassword)
		if h.exporter != nil {
			authed.POST("/history/export", h.exportHistory)
		}
	}
}

func (h *Handler) page(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.render(c, http.StatusOK, name, title, nil)
	}
}

func (h *Handler) index(c *gin.Context) {
	portfolio, err := h.ledger.Portfolio(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "index.html", "Portfolio", gin.H{
		"User":     portfolio.User,
		"Holdings": portfolio.Holdings,
	})
}

func (h *Handler) quote(c *gin.Context) {
	q, err := h.ledger.Quote(c.Request.Context(), c.PostForm("symbol"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "quoted.html", "Quoted", gin.H{"Quote": q})
}

func (h *Handler) buy(c *gin.Context) {
	if _, err := h.ledger.Buy(c.Request.Context(), currentUserID(c), c.PostForm("symbol"), c.PostForm("shares")); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) sellForm(c *gin.Context) {
	symbols, err := h.ledger.OwnedSymbols(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "sell.html", "Sell", gin.H{"Symbols": symbols})
}

func (h *Handler) sell(c *gin.Context) {
	if _, err := h.ledger.Sell(c.Request.Context(), currentUserID(c), c.PostForm("symbol"), c.PostForm("shares")); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) history(c *gin.Context) {
	txs, err := h.ledger.History(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "history.html", "History", gin.H{
		"Transactions": txs,
		"CanExport":    h.exporter != nil,
	})
}

func (h *Handler) exportHistory(c *gin.Context) {
	link, err := h.exporter.Export(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, link)
}

func (h *Handler) addCash(c *gin.Context) {
	if _, err := h.ledger.Deposit(c.Request.Context(), currentUserID(c), c.PostForm("amount"), c.PostForm("card_no"), c.PostForm("code")); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) changePassword(c *gin.Context) {
	err := h.users.ChangePassword(c.Request.Context(), currentUserID(c),
		c.PostForm("old_password"), c.PostForm("new_password"), c.PostForm("confirm"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "changed.html", "Password Changed", nil)
}

func (h *Handler) loginForm(c *gin.Context) {
	h.clearSession(c)
	h.render(c, http.StatusOK, "login.html", "Log In", nil)
}

func (h *Handler) login(c *gin.Context) {
	h.clearSession(c)

	user, err := h.users.Authenticate(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.startSession(c, user.ID); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) logout(c *gin.Context) {
	h.clearSession(c)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) registerForm(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", "Register", nil)
}

func (h *Handler) register(c *gin.Context) {
	user, err := h.users.Register(c.Request.Context(), c.PostForm("username"), c.PostForm("password"), c.PostForm("confirmation"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.startSession(c, user.ID); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// render fills in the fields every page's layout needs.
func (h *Handler) render(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	_, loggedIn := c.Get(userIDKey)
	data["LoggedIn"] = loggedIn
	c.HTML(status, name, data)
}

// fail renders input errors as an apology with their status. Anything else is
// a fault: it is logged and answered with 500.
func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"
	if ie, ok := service.AsInputError(err); ok {
		status = ie.Status
		message = ie.Message
	} else {
		h.logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Errorf("request failed: %v", err)
	}
	h.render(c, status, "apology.html", "Apology", gin.H{
		"Top":     status,
		"Bottom":  escapeApology(message),
		"Message": message,
	})
}
