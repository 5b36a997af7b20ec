package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/insightdelivered/smartparse/internal/models"
	"github.com/insightdelivered/smartparse/internal/parser"
	"github.com/insightdelivered/smartparse/internal/store"
)

// Version reported by the health endpoint.
const Version = "1.2.0"

// OrgHeader carries the organization identifier for persisting endpoints.
// The organization always comes from the caller, never from the parsed text.
const OrgHeader = "X-Organization-ID"

// ParseRequest is the JSON body for the parse endpoints.
type ParseRequest struct {
	Text string `json:"text"`
}

// ParseResponse wraps a parse-only result.
type ParseResponse struct {
	Success     bool                     `json:"success"`
	Transaction models.ParsedTransaction `json:"transaction"`
}

// TransactionResponse wraps a stored record.
type TransactionResponse struct {
	Success     bool               `json:"success"`
	Transaction models.Transaction `json:"transaction"`
}

// ErrorResponse is the JSON error shape for all endpoints.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Parser *parser.TransactionParser
	Store  store.Store
}

// NewApp builds the fiber application with all routes mounted.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "smartparse",
	})
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/parse", h.HandleParse)
	app.Post("/api/transactions", h.HandleCreateTransaction)
	app.Get("/api/transactions", h.HandleListTransactions)

	return app
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": Version,
	})
}

// HandleParse runs the parser without persisting anything. The parser itself
// never fails; only an empty input is rejected, before it is ever parsed.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	text, err := h.requestText(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(ParseResponse{
		Success:     true,
		Transaction: h.Parser.Parse(text),
	})
}

// HandleCreateTransaction parses the text and persists the result under the
// caller's organization.
func (h *Handler) HandleCreateTransaction(c *fiber.Ctx) error {
	text, err := h.requestText(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	orgID := c.Get(OrgHeader)
	if orgID == "" {
		return writeError(c, fiber.StatusBadRequest, "missing "+OrgHeader+" header")
	}

	txn, err := h.Store.SaveTransaction(c.Context(), orgID, h.Parser.Parse(text), text)
	if err != nil {
		if errors.Is(err, store.ErrMissingOrg) {
			return writeError(c, fiber.StatusBadRequest, err.Error())
		}
		return writeError(c, fiber.StatusInternalServerError, "failed to store transaction: "+err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(TransactionResponse{
		Success:     true,
		Transaction: *txn,
	})
}

// HandleListTransactions returns one cursor page of the organization's
// transactions, newest first.
func (h *Handler) HandleListTransactions(c *fiber.Ctx) error {
	orgID := c.Get(OrgHeader)
	if orgID == "" {
		return writeError(c, fiber.StatusBadRequest, "missing "+OrgHeader+" header")
	}

	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		return writeError(c, fiber.StatusBadRequest, "limit must not be negative")
	}

	page, err := h.Store.ListTransactions(c.Context(), orgID, c.Query("cursor"), limit)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidCursor):
			return writeError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrMissingOrg):
			return writeError(c, fiber.StatusBadRequest, err.Error())
		default:
			return writeError(c, fiber.StatusInternalServerError, "failed to list transactions: "+err.Error())
		}
	}

	// nil marshals to JSON null, not [].
	if page.Transactions == nil {
		page.Transactions = []models.Transaction{}
	}
	return c.JSON(page)
}

func (h *Handler) requestText(c *fiber.Ctx) (string, error) {
	var req ParseRequest
	if err := c.BodyParser(&req); err != nil {
		return "", errors.New("invalid JSON body; expected {\"text\": \"...\"}")
	}
	if strings.TrimSpace(req.Text) == "" {
		return "", errors.New("text must not be empty")
	}
	return req.Text, nil
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}
