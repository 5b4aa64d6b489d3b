package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mtlahti/choreboard/internal/model"
	"github.com/mtlahti/choreboard/internal/store"
	"github.com/mtlahti/choreboard/internal/week"
	ws "github.com/mtlahti/choreboard/internal/websocket"
)

type DayPlanHandler struct {
	plans  store.DayPlans
	hub    *ws.Hub
	logger *slog.Logger
}

func NewDayPlanHandler(plans store.DayPlans, hub *ws.Hub, logger *slog.Logger) *DayPlanHandler {
	return &DayPlanHandler{plans: plans, hub: hub, logger: logger}
}

// Get returns the plan for a date. An absent record is rendered as the
// default-empty shape rather than a 404, so callers never need to know
// whether a day has been written yet.
func (h *DayPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	plans, err := h.plans.GetRange([]string{date})
	if err != nil {
		h.logger.Error("get day plan", "date", date, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get day plan"})
		return
	}
	writeJSON(w, http.StatusOK, plans[0])
}

// Week returns the seven plans of the Monday-start week containing the
// `date` query parameter, defaulting to the current server-local day.
func (h *DayPlanHandler) Week(w http.ResponseWriter, r *http.Request) {
	anchor := time.Now()
	if q := r.URL.Query().Get("date"); q != "" {
		t, err := week.ParseDate(q)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		anchor = t
	}

	plans, err := h.plans.GetRange(week.Dates(anchor))
	if err != nil {
		h.logger.Error("get week", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get week"})
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

// Upsert applies a partial update. Field presence is detected on the raw
// JSON so an explicit null wins over an omitted field.
func (h *DayPlanHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	var patch model.DayPlanPatch
	if msg, ok := raw["tasks"]; ok {
		var tasks model.TaskSet
		if err := json.Unmarshal(msg, &tasks); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tasks"})
			return
		}
		patch.Tasks = &tasks
	}
	if msg, ok := raw["aloneInKitchen"]; ok {
		if err := json.Unmarshal(msg, &patch.AloneInKitchen); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid aloneInKitchen"})
			return
		}
		patch.AloneSet = true
	}
	if msg, ok := raw["dishOfTheDay"]; ok {
		if err := json.Unmarshal(msg, &patch.DishOfTheDay); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid dishOfTheDay"})
			return
		}
		patch.DishSet = true
	}
	if msg, ok := raw["shoppingList"]; ok {
		if err := json.Unmarshal(msg, &patch.ShoppingList); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid shoppingList"})
			return
		}
		patch.ShoppingSet = true
	}

	plan, err := h.plans.Upsert(date, patch)
	if err != nil {
		h.logger.Error("upsert day plan", "date", date, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update day plan"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("day_plan", "updated", date, nil))
	writeJSON(w, http.StatusOK, plan)
}

// AssignTask replaces one task slot. The kind path segment is validated here
// against the closed four-element set; the store never sees invalid kinds.
func (h *DayPlanHandler) AssignTask(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	kind := model.TaskKind(r.PathValue("kind"))
	if !kind.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown task kind"})
		return
	}

	var req struct {
		Assignee *string `json:"assignee"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	plan, err := h.plans.AssignTask(date, kind, req.Assignee)
	if err != nil {
		h.logger.Error("assign task", "date", date, "kind", kind, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to assign task"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("day_plan", "updated", date, map[string]any{"task": string(kind)}))
	writeJSON(w, http.StatusOK, plan)
}

func (h *DayPlanHandler) SetAloneInKitchen(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	var req struct {
		Value *string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	plan, err := h.plans.SetAloneInKitchen(date, req.Value)
	if err != nil {
		h.logger.Error("set alone in kitchen", "date", date, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update day plan"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("day_plan", "updated", date, nil))
	writeJSON(w, http.StatusOK, plan)
}

func (h *DayPlanHandler) SetDishOfTheDay(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	var req struct {
		Value *string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	plan, err := h.plans.SetDishOfTheDay(date, req.Value)
	if err != nil {
		h.logger.Error("set dish of the day", "date", date, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update day plan"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("day_plan", "updated", date, nil))
	writeJSON(w, http.StatusOK, plan)
}

func (h *DayPlanHandler) Reset(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	plan, err := h.plans.ResetTasks(date)
	if err != nil {
		h.logger.Error("reset day plan", "date", date, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to reset day plan"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("day_plan", "reset", date, nil))
	writeJSON(w, http.StatusOK, plan)
}

func (h *DayPlanHandler) AddShoppingItem(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	var req struct {
		Item string `json:"item"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if strings.TrimSpace(req.Item) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "item is required"})
		return
	}

	plan, err := h.plans.AddShoppingItem(date, req.Item)
	if err != nil {
		h.logger.Error("add shopping item", "date", date, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to add item"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("day_plan", "updated", date, nil))
	writeJSON(w, http.StatusOK, plan)
}

// RemoveShoppingItem removes the item at a 0-based index. An out-of-range
// index leaves the list unchanged and still answers 200; removal is
// filter-based, not a bounds-checked delete.
func (h *DayPlanHandler) RemoveShoppingItem(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid index"})
		return
	}

	plan, err := h.plans.RemoveShoppingItem(date, index)
	if err != nil {
		h.logger.Error("remove shopping item", "date", date, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to remove item"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("day_plan", "updated", date, nil))
	writeJSON(w, http.StatusOK, plan)
}

func (h *DayPlanHandler) ReplaceShoppingList(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	var req struct {
		Items []string `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	plan, err := h.plans.ReplaceShoppingList(date, req.Items)
	if err != nil {
		h.logger.Error("replace shopping list", "date", date, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to replace list"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("day_plan", "updated", date, nil))
	writeJSON(w, http.StatusOK, plan)
}

// dateParam validates the {date} path segment, writing a 400 itself when the
// value isn't a real YYYY-MM-DD calendar date.
func dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := r.PathValue("date")
	if _, err := week.ParseDate(date); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return "", false
	}
	return date, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
