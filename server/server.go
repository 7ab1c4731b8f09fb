// Package server exposes a farm book session over HTTP: the JSON API the
// single-page dashboard talks to, plus prometheus metrics and a nightly
// export backup.
package server

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	accounting "github.com/bumlambs-max/Accounting-2.0"
)

// Server handles HTTP traffic for one session.
type Server struct {
	session *accounting.Session
	logger  *zap.Logger
	metrics *metrics
}

// New constructs the HTTP adapter over session. A nil logger disables
// logging.
func New(session *accounting.Session, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		session: session,
		logger:  logger,
		metrics: newMetrics(session),
	}
}

// Router wires the Gin engine with routes and middlewares.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(s.logger))

	r.POST("/api/events", s.applyEvent)
	r.GET("/api/book", s.exportBook)
	r.GET("/api/dashboard", s.dashboard)
	r.POST("/api/refresh", s.refresh)
	r.GET("/api/sync", s.syncStatus)
	r.GET("/metrics", gin.WrapH(s.metrics.handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

// applyEvent decodes one domain event from the request body and applies it
// to the book. Validation failures come back as 400 with the reason.
func (s *Server) applyEvent(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	evt, err := accounting.DecodeEvent(data)
	if err != nil {
		s.metrics.eventsRejected.Inc()
		s.logger.Warn("undecodable event", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.session.Apply(evt); err != nil {
		s.metrics.eventsRejected.Inc()
		s.logger.Warn("event rejected", zap.String("event", string(evt.What())), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.metrics.eventsApplied.Inc()

	var revision uint64
	s.session.Inspect(func(b *accounting.Book) { revision = b.Revision })
	c.JSON(http.StatusOK, gin.H{"revision": revision})
}

// exportBook streams the current book snapshot.
func (s *Server) exportBook(c *gin.Context) {
	c.Header("Content-Type", "application/json")
	c.Status(http.StatusOK)
	if err := s.session.Export(c.Writer); err != nil {
		s.logger.Error("export failed", zap.Error(err))
	}
}

// refresh pulls the remote book, replacing local state.
func (s *Server) refresh(c *gin.Context) {
	if err := s.session.Refresh(c.Request.Context()); err != nil {
		s.logger.Error("refresh failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to refresh from remote"})
		return
	}
	var revision uint64
	s.session.Inspect(func(b *accounting.Book) { revision = b.Revision })
	c.JSON(http.StatusOK, gin.H{"revision": revision})
}

// syncStatus reports the sync indicator state.
func (s *Server) syncStatus(c *gin.Context) {
	resp := gin.H{
		"syncing": s.session.Syncing(),
		"dirty":   s.session.Dirty(),
	}
	if t := s.session.LastSync(); !t.IsZero() {
		resp["lastSync"] = t.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}

// dashboard aggregates the book into the numbers the dashboard renders.
// Query parameters: on (date, default today), lookback (mortality days,
// default 90), species (mortality name filter).
func (s *Server) dashboard(c *gin.Context) {
	on := accounting.Today()
	if q := c.Query("on"); q != "" {
		d, err := accounting.ParseDate(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date: " + q})
			return
		}
		on = d
	}
	lookback := 90
	if q := c.Query("lookback"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lookback: " + q})
			return
		}
		lookback = n
	}

	var d dashboard
	s.session.Inspect(func(b *accounting.Book) {
		d = buildDashboard(b, on, lookback, c.Query("species"))
	})
	c.JSON(http.StatusOK, d)
}

// dashboard is the aggregate view served to the UI. Everything in it is
// derived; nothing here is stored.
type dashboard struct {
	Owner    string          `json:"owner"`
	On       accounting.Date `json:"on"`
	Revision uint64          `json:"revision"`

	TotalCash money            `json:"totalCash"`
	Accounts  []accountBalance `json:"accounts"`

	Income            money           `json:"income"`
	Expense           money           `json:"expense"`
	GrossMargin       float64         `json:"grossMargin"`
	BreakevenProgress float64         `json:"breakevenProgress"`
	BreakevenGap      money           `json:"breakevenGap"`
	TopExpenses       []expenseBucket `json:"topExpenses"`

	LivestockValue   money `json:"livestockValue"`
	InventoryValue   money `json:"inventoryValue"`
	AssetValue       money `json:"assetValue"`
	TotalLiabilities money `json:"totalLiabilities"`
	NetWorth         money `json:"netWorth"`

	Debts     debtView      `json:"debts"`
	Mortality mortalityView `json:"mortality"`
}

type money = accounting.Money

type accountBalance struct {
	ID      string                 `json:"id"`
	Name    string                 `json:"name"`
	Type    accounting.AccountType `json:"type"`
	Balance money                  `json:"balance"`
}

type expenseBucket struct {
	Name  string `json:"name"`
	Total money  `json:"total"`
}

type debtView struct {
	TotalOutstanding money         `json:"totalOutstanding"`
	TotalDueSoon     money         `json:"totalDueSoon"`
	Upcoming         []upcomingDue `json:"upcoming"`
}

type upcomingDue struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	DueDate   accounting.Date      `json:"dueDate"`
	Balance   money                `json:"balance"`
	AmountDue money                `json:"amountDue"`
	Status    accounting.DueStatus `json:"status"`
}

type mortalityView struct {
	From      accounting.Date `json:"from"`
	To        accounting.Date `json:"to"`
	Total     quantity        `json:"total"`
	BySpecies []speciesDeaths `json:"bySpecies"`
}

type quantity = accounting.Quantity

type speciesDeaths struct {
	Species string   `json:"species"`
	Name    string   `json:"name"`
	Deaths  quantity `json:"deaths"`
}

func buildDashboard(b *accounting.Book, on accounting.Date, lookback int, speciesFilter string) dashboard {
	snap := b.NewSnapshot(on)
	income, expense := snap.CashflowSummary()

	d := dashboard{
		Owner:    b.Owner,
		On:       on,
		Revision: b.Revision,

		TotalCash: snap.TotalCash(),

		Income:            income,
		Expense:           expense,
		GrossMargin:       float64(snap.GrossMargin()),
		BreakevenProgress: float64(snap.BreakevenProgress()),
		BreakevenGap:      snap.BreakevenGap(),

		LivestockValue:   snap.LivestockValue(),
		InventoryValue:   snap.InventoryValue(),
		AssetValue:       snap.AssetValue(),
		TotalLiabilities: snap.TotalLiabilities(),
		NetWorth:         snap.NetWorth(),
	}

	for _, a := range b.Accounts {
		d.Accounts = append(d.Accounts, accountBalance{
			ID:      a.ID,
			Name:    a.Name,
			Type:    a.Type,
			Balance: snap.AccountBalance(a.ID),
		})
	}
	for _, bucket := range snap.TopExpenseCategories(5) {
		d.TopExpenses = append(d.TopExpenses, expenseBucket{Name: bucket.Name, Total: bucket.Total})
	}

	debts := snap.DebtSummary()
	d.Debts = debtView{
		TotalOutstanding: debts.TotalOutstanding,
		TotalDueSoon:     debts.TotalDueSoon,
	}
	for _, up := range debts.Upcoming {
		d.Debts.Upcoming = append(d.Debts.Upcoming, upcomingDue{
			ID:        up.Liability.ID,
			Name:      up.Liability.Name,
			DueDate:   up.Liability.DueDate,
			Balance:   up.Liability.CurrentBalance,
			AmountDue: up.AmountDue,
			Status:    up.Status,
		})
	}

	mort := snap.Mortality(lookback, speciesFilter)
	d.Mortality = mortalityView{
		From:  mort.Window.From,
		To:    mort.Window.To,
		Total: mort.Total,
	}
	for _, sd := range mort.BySpecies {
		d.Mortality.BySpecies = append(d.Mortality.BySpecies, speciesDeaths{
			Species: sd.Species,
			Name:    sd.Name,
			Deaths:  sd.Deaths,
		})
	}

	return d
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
