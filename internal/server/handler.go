package server

import (
	"io"
	"net/http"

	"github.com/Zuo-Peng/karte/internal/chart"
	"github.com/Zuo-Peng/karte/internal/summary"
	"github.com/labstack/echo/v4"
)

// Handler serves the parsing API. All POST bodies are raw UTF-8 text.
type Handler struct {
	layout   summary.Layout
	minChars int
	maxChars int
}

func NewHandler(layout summary.Layout, minChars, maxChars int) *Handler {
	return &Handler{layout: layout, minChars: minChars, maxChars: maxChars}
}

// RegisterRoutes registers the API routes under g.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/chart/parse", h.ParseChart)
	g.POST("/summary/parse", h.ParseSummary)
	g.POST("/input/check", h.CheckInput)
}

type chartResponse struct {
	Entries []chart.Entry `json:"entries"`
}

type summaryResponse struct {
	Cleaned  string            `json:"cleaned"`
	Sections *summary.Sections `json:"sections"`
}

type checkResponse struct {
	Length int               `json:"length"`
	OK     bool              `json:"ok"`
	Status chart.InputStatus `json:"status"`
}

func (h *Handler) ParseChart(c echo.Context) error {
	text, err := readText(c)
	if err != nil {
		return err
	}
	entries := chart.Parse(text)
	if entries == nil {
		entries = []chart.Entry{}
	}
	return c.JSON(http.StatusOK, chartResponse{Entries: entries})
}

func (h *Handler) ParseSummary(c echo.Context) error {
	text, err := readText(c)
	if err != nil {
		return err
	}
	cleaned := summary.Clean(text)
	return c.JSON(http.StatusOK, summaryResponse{
		Cleaned:  cleaned,
		Sections: h.layout.Parse(cleaned),
	})
}

func (h *Handler) CheckInput(c echo.Context) error {
	text, err := readText(c)
	if err != nil {
		return err
	}
	res := chart.CheckInput(text, h.minChars, h.maxChars)
	return c.JSON(http.StatusOK, checkResponse{Length: res.Length, OK: res.OK(), Status: res.Status})
}

func Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func readText(c echo.Context) (string, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "read body: "+err.Error())
	}
	return string(body), nil
}
