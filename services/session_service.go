package services

import (
	"bytes"
	"errors"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hieuok2710/qlsancauv6/engine"
	"github.com/hieuok2710/qlsancauv6/middleware"
	"github.com/hieuok2710/qlsancauv6/models"
	"github.com/hieuok2710/qlsancauv6/utils"
)

// SessionService owns the live per-user session states. Each user's state
// is a serialized actor: one mutex guards it, every operation runs to
// completion under that lock, and nothing is shared across users. Memory
// is the source of truth; the identity list is persisted best-effort after
// each roster mutation.
type SessionService struct {
	DB *gorm.DB

	mu    sync.Mutex
	users map[string]*userState
}

type userState struct {
	mu    sync.Mutex
	state *engine.SessionState
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{DB: db, users: map[string]*userState{}}
}

// userStateFor returns (creating if needed) the actor for a user. A
// first-time user with no persisted roster gets two placeholder players,
// as the original app seeds.
func (s *SessionService) userStateFor(userID string) (*userState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if us, ok := s.users[userID]; ok {
		return us, nil
	}

	identities, found, err := LoadIdentities(s.DB, userID)
	if err != nil {
		// Corrupt or unreadable store: fall back to an empty default
		// rather than failing startup of this user's session.
		log.Printf("⚠️ [SESSION] failed to load roster for %s: %v", userID, err)
		identities, found = nil, false
	}
	if !found {
		identities = []models.PlayerIdentity{
			{ID: uuid.NewString(), Name: "Người chơi 1"},
			{ID: uuid.NewString(), Name: "Người chơi 2"},
		}
		if err := SaveIdentities(s.DB, userID, identities); err != nil {
			log.Printf("⚠️ [SESSION] failed to seed roster for %s: %v", userID, err)
		}
	}

	us := &userState{state: engine.NewSessionState(userID, identities)}
	s.users[userID] = us
	return us, nil
}

// Evict drops a user's live state so the next request reloads from the
// persisted stores. Used after a wholesale restore.
func (s *SessionService) Evict(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
}

// withState runs fn under the user's actor lock.
func (s *SessionService) withState(c *fiber.Ctx, fn func(st *engine.SessionState) error) error {
	us, err := s.userStateFor(middleware.UserID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load session state"})
	}
	us.mu.Lock()
	defer us.mu.Unlock()
	return fn(us.state)
}

// persistRoster writes the identity list through. Failures are logged and
// surfaced but never roll back memory.
func (s *SessionService) persistRoster(st *engine.SessionState) bool {
	if err := SaveIdentities(s.DB, st.UserID, st.Identities()); err != nil {
		log.Printf("⚠️ [SESSION] failed to persist roster for %s: %v", st.UserID, err)
		return false
	}
	return true
}

// rejected maps an engine validation error to a 400 notice.
func rejected(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func withWarning(m fiber.Map, persisted bool) fiber.Map {
	if !persisted {
		m["warning"] = "không thể lưu danh sách người chơi, dữ liệu chỉ còn trong phiên hiện tại"
	}
	return m
}

// GetSession returns the complete live view: billing details, summary,
// assignments, court states and the match log.
func (s *SessionService) GetSession(c *fiber.Ctx) error {
	return s.withState(c, func(st *engine.SessionState) error {
		catalogs, err := LoadCatalogs(s.DB, st.UserID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to load catalogs"})
		}
		colors, err := LoadColors(s.DB, st.UserID)
		if err != nil {
			log.Printf("⚠️ [SESSION] failed to load court colors for %s: %v", st.UserID, err)
			colors = map[int]string{}
		}

		assignments := map[string]string{}
		for slot, id := range st.Assignments {
			assignments[slot.String()] = id
		}
		gameTypes := map[int]models.GameType{}
		phases := map[int]models.CourtPhase{}
		pending := map[int]*engine.PendingMatch{}
		for i := 0; i < models.NumCourts; i++ {
			gameTypes[i] = st.CourtGameTypes[i]
			phases[i] = st.CourtPhase(i)
			if st.Pending[i] != nil {
				pending[i] = st.Pending[i]
			}
		}
		unassigned := []string{}
		for _, p := range st.UnassignedPlayers() {
			unassigned = append(unassigned, p.ID)
		}

		return c.JSON(fiber.Map{
			"players":        st.PlayerDetails(catalogs),
			"summary":        st.Summary(catalogs),
			"assignments":    assignments,
			"courtGameTypes": gameTypes,
			"courtPhases":    phases,
			"courtColors":    colors,
			"pendingResults": pending,
			"matches":        st.Matches,
			"matchesPlayed":  st.MatchesPlayed,
			"unassigned":     unassigned,
			"catalogs":       catalogs,
		})
	})
}

func (s *SessionService) AddPlayer(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	return s.withState(c, func(st *engine.SessionState) error {
		p, err := st.AddPlayer(req.Name)
		if err != nil {
			return rejected(c, err)
		}
		persisted := s.persistRoster(st)
		return c.Status(fiber.StatusCreated).JSON(withWarning(fiber.Map{"player": p}, persisted))
	})
}

func (s *SessionService) RemovePlayer(c *fiber.Ctx) error {
	id := c.Params("id")
	return s.withState(c, func(st *engine.SessionState) error {
		if err := st.RemovePlayer(id); err != nil {
			return rejected(c, err)
		}
		persisted := s.persistRoster(st)
		return c.JSON(withWarning(fiber.Map{"message": "Đã xóa người chơi."}, persisted))
	})
}

func (s *SessionService) UpdatePlayerInfo(c *fiber.Ctx) error {
	id := c.Params("id")
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	return s.withState(c, func(st *engine.SessionState) error {
		if err := st.UpdatePlayerInfo(id, req.Name, req.Phone); err != nil {
			return rejected(c, err)
		}
		persisted := s.persistRoster(st)
		return c.JSON(withWarning(fiber.Map{"message": "Đã cập nhật thông tin người chơi."}, persisted))
	})
}

// ImportPlayers accepts either a JSON body with clean rows or a raw CSV
// body (Content-Type text/csv). Mode comes from the "mode" query or body
// field: replace rebuilds the roster, merge appends new names only.
func (s *SessionService) ImportPlayers(c *fiber.Ctx) error {
	mode := engine.ImportMode(c.Query("mode", string(engine.ImportMerge)))
	var rows []engine.ImportRow

	if strings.HasPrefix(string(c.Request().Header.ContentType()), "text/csv") {
		identities, err := utils.PlayersFromCSV(bytes.NewReader(c.Body()))
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "file không đúng định dạng CSV"})
		}
		for _, row := range identities {
			rows = append(rows, engine.ImportRow{Name: row.Name, Phone: row.Phone})
		}
	} else {
		var req struct {
			Mode string             `json:"mode"`
			Rows []engine.ImportRow `json:"rows"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.Mode != "" {
			mode = engine.ImportMode(req.Mode)
		}
		rows = req.Rows
	}

	return s.withState(c, func(st *engine.SessionState) error {
		added, err := st.ImportPlayers(rows, mode)
		if err != nil {
			return rejected(c, err)
		}
		persisted := s.persistRoster(st)
		var message string
		switch {
		case mode == engine.ImportReplace:
			message = strconv.Itoa(added) + " người chơi đã được nhập thành công, thay thế danh sách cũ."
		case added == 0:
			message = "Không có người chơi mới nào trong file để thêm vào."
		default:
			message = strconv.Itoa(added) + " người chơi mới đã được thêm vào danh sách."
		}
		return c.JSON(withWarning(fiber.Map{"message": message, "added": added}, persisted))
	})
}

// ExportPlayersCSV streams the non-guest roster as CSV rows for the export
// collaborator.
func (s *SessionService) ExportPlayersCSV(c *fiber.Ctx) error {
	return s.withState(c, func(st *engine.SessionState) error {
		data, err := utils.PlayersToCSV(st.Identities())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to serialize players"})
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="players_`+time.Now().Format("2006-01-02")+`.csv"`)
		return c.Send(data)
	})
}

func (s *SessionService) UpdateQuantity(c *fiber.Ctx) error {
	id := c.Params("id")
	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	return s.withState(c, func(st *engine.SessionState) error {
		if err := st.UpdateGuestQuantity(id, req.Delta); err != nil {
			return rejected(c, err)
		}
		return c.JSON(fiber.Map{"message": "Đã cập nhật số lượng khách."})
	})
}

func (s *SessionService) UpdateConsumption(c *fiber.Ctx) error {
	id := c.Params("id")
	kind := models.CatalogKind(c.Params("kind"))
	if !models.ValidCatalogKind(kind) {
		return rejected(c, engine.ErrInvalidCatalog)
	}
	var req struct {
		ItemID string `json:"itemId"`
		Delta  int    `json:"delta"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	return s.withState(c, func(st *engine.SessionState) error {
		if err := st.UpdateConsumption(id, kind, req.ItemID, req.Delta); err != nil {
			return rejected(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func (s *SessionService) SetAdjustment(c *fiber.Ctx) error {
	id := c.Params("id")
	var req struct {
		Amount int64  `json:"amount"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	return s.withState(c, func(st *engine.SessionState) error {
		if err := st.SetAdjustment(id, req.Amount, req.Reason); err != nil {
			return rejected(c, err)
		}
		return c.JSON(fiber.Map{"message": "Đã cập nhật điều chỉnh chi phí."})
	})
}

func (s *SessionService) TogglePaid(c *fiber.Ctx) error {
	id := c.Params("id")
	return s.withState(c, func(st *engine.SessionState) error {
		if err := st.TogglePaid(id); err != nil {
			return rejected(c, err)
		}
		p, _ := st.Player(id)
		return c.JSON(fiber.Map{"isPaid": p.IsPaid})
	})
}

func (s *SessionService) MarkAllPaid(c *fiber.Ctx) error {
	return s.withState(c, func(st *engine.SessionState) error {
		st.MarkAllPaid()
		return c.JSON(fiber.Map{"message": "Đã đánh dấu tất cả đã thanh toán."})
	})
}

// parseSlot reads a slot id from a request body field.
type slotRequest struct {
	PlayerID string `json:"playerId"`
	SlotID   string `json:"slotId"`
}

func (s *SessionService) AssignPlayer(c *fiber.Ctx) error {
	var req slotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	slot, err := models.ParseSlotID(req.SlotID)
	if err != nil {
		return rejected(c, engine.ErrInvalidSlot)
	}
	return s.withState(c, func(st *engine.SessionState) error {
		if err := st.ForceAssign(req.PlayerID, slot); err != nil {
			return rejected(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func (s *SessionService) AssignPlayerIfEmpty(c *fiber.Ctx) error {
	var req slotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	slot, err := models.ParseSlotID(req.SlotID)
	if err != nil {
		return rejected(c, engine.ErrInvalidSlot)
	}
	return s.withState(c, func(st *engine.SessionState) error {
		if err := st.AssignIfEmpty(req.PlayerID, slot); err != nil {
			return rejected(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func (s *SessionService) UnassignSlot(c *fiber.Ctx) error {
	var req slotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	slot, err := models.ParseSlotID(req.SlotID)
	if err != nil {
		return rejected(c, engine.ErrInvalidSlot)
	}
	return s.withState(c, func(st *engine.SessionState) error {
		if err := st.Unassign(slot); err != nil {
			return rejected(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func (s *SessionService) AutoAssign(c *fiber.Ctx) error {
	return s.withState(c, func(st *engine.SessionState) error {
		seated, err := st.AutoAssign()
		if err != nil {
			return rejected(c, err)
		}
		return c.JSON(fiber.Map{
			"message": "Đã tự động xếp người chơi vào sân.",
			"seated":  seated,
		})
	})
}

func courtIndex(c *fiber.Ctx) (int, error) {
	idx, err := strconv.Atoi(c.Params("index"))
	if err != nil || idx < 0 || idx >= models.NumCourts {
		return 0, engine.ErrInvalidCourt
	}
	return idx, nil
}

func (s *SessionService) SetCourtGameType(c *fiber.Ctx) error {
	idx, err := courtIndex(c)
	if err != nil {
		return rejected(c, err)
	}
	var req struct {
		GameType models.GameType `json:"gameType"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	return s.withState(c, func(st *engine.SessionState) error {
		if err := st.SetCourtGameType(idx, req.GameType); err != nil {
			return rejected(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// SetCourtColor persists a court's display color. Colors are cosmetic but
// must survive a reload.
func (s *SessionService) SetCourtColor(c *fiber.Ctx) error {
	idx, err := courtIndex(c)
	if err != nil {
		return rejected(c, err)
	}
	var req struct {
		Color string `json:"color"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	userID := middleware.UserID(c)
	record := models.CourtColorRecord{UserID: userID, CourtIndex: idx, Color: req.Color}
	if err := s.DB.Save(&record).Error; err != nil {
		log.Printf("⚠️ [SESSION] failed to persist court color for %s: %v", userID, err)
		return c.JSON(fiber.Map{"warning": "không thể lưu màu sân"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *SessionService) EndMatch(c *fiber.Ctx) error {
	idx, err := courtIndex(c)
	if err != nil {
		return rejected(c, err)
	}
	return s.withState(c, func(st *engine.SessionState) error {
		pending, err := st.EndMatch(idx)
		if err != nil {
			return rejected(c, err)
		}
		return c.JSON(fiber.Map{"pending": pending})
	})
}

func (s *SessionService) ConfirmResult(c *fiber.Ctx) error {
	idx, err := courtIndex(c)
	if err != nil {
		return rejected(c, err)
	}
	var req struct {
		WinningTeam string `json:"winningTeam"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	return s.withState(c, func(st *engine.SessionState) error {
		match, err := st.ConfirmResult(idx, req.WinningTeam)
		if err != nil {
			return rejected(c, err)
		}
		if match == nil {
			return c.JSON(fiber.Map{
				"message": "Trận đấu tại Sân " + strconv.Itoa(idx+1) + " kết thúc với tỉ số hòa.",
			})
		}
		names := ""
		for i, w := range match.Winners() {
			if i > 0 {
				names += ", "
			}
			names += w.Name
		}
		return c.JSON(fiber.Map{
			"message": "Sân " + strconv.Itoa(idx+1) + ": " + names + " chiến thắng!",
			"match":   match,
		})
	})
}

func (s *SessionService) CancelResult(c *fiber.Ctx) error {
	idx, err := courtIndex(c)
	if err != nil {
		return rejected(c, err)
	}
	return s.withState(c, func(st *engine.SessionState) error {
		if err := st.CancelResult(idx); err != nil {
			return rejected(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// SaveSession archives the current session and resets the live state for a
// new one. The archived record embeds the full billing snapshot, the match
// log and the item names in effect right now.
func (s *SessionService) SaveSession(c *fiber.Ctx) error {
	return s.withState(c, func(st *engine.SessionState) error {
		catalogs, err := LoadCatalogs(s.DB, st.UserID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to load catalogs"})
		}
		session, err := st.BuildSession(uuid.NewString(), time.Now(), catalogs)
		if err != nil {
			if errors.Is(err, engine.ErrEmptyRoster) {
				return rejected(c, err)
			}
			return c.Status(500).JSON(fiber.Map{"error": "failed to snapshot session"})
		}

		record, err := models.NewSessionRecord(st.UserID, session)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to encode session"})
		}
		if err := s.DB.Create(&record).Error; err != nil {
			// History must not be lost silently: fail the save and keep
			// the live session untouched so the caller can retry.
			log.Printf("❌ [SESSION] failed to append history for %s: %v", st.UserID, err)
			return c.Status(500).JSON(fiber.Map{"error": "không thể lưu buổi chơi, vui lòng thử lại"})
		}

		identities, found, err := LoadIdentities(s.DB, st.UserID)
		if err != nil || !found {
			// fall back to the in-memory identity list
			identities = st.Identities()
		}
		st.Reset(identities)

		log.Printf("✅ [SESSION] saved session %s for %s (%s)", session.ID, st.UserID, utils.FormatVND(session.Summary.GrandTotal))
		return c.JSON(fiber.Map{
			"message": "Đã lưu buổi chơi và bắt đầu buổi mới!",
			"session": session,
		})
	})
}
