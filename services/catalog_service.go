package services

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/hieuok2710/qlsancauv6/engine"
	"github.com/hieuok2710/qlsancauv6/middleware"
	"github.com/hieuok2710/qlsancauv6/models"
)

// CatalogService manages the per-user price lists for drinks, foods and
// shuttlecock types. Catalogs are replaced wholesale: the client sends the
// complete desired list and the server persists it as-is.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

func (s *CatalogService) GetCatalogs(c *fiber.Ctx) error {
	catalogs, err := LoadCatalogs(s.DB, middleware.UserID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load catalogs"})
	}
	return c.JSON(catalogs)
}

type catalogItemInput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// ReplaceCatalog overwrites one catalog kind with the submitted list. Items
// without an id get one derived from the name, suffixed on collision so two
// "Trà đường" entries stay distinct.
func (s *CatalogService) ReplaceCatalog(c *fiber.Ctx) error {
	kind := models.CatalogKind(c.Params("kind"))
	if !models.ValidCatalogKind(kind) {
		return c.Status(400).JSON(fiber.Map{"error": engine.ErrInvalidCatalog.Error()})
	}

	var req struct {
		Items []catalogItemInput `json:"items"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	seen := map[string]bool{}
	items := make([]models.CatalogItem, 0, len(req.Items))
	for _, in := range req.Items {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return c.Status(400).JSON(fiber.Map{"error": "tên món không được để trống"})
		}
		if in.Price <= 0 {
			return c.Status(400).JSON(fiber.Map{"error": "giá tiền phải lớn hơn 0"})
		}
		id := in.ID
		if id == "" {
			id = slug.Make(name)
		}
		base := id
		for n := 2; seen[id]; n++ {
			id = base + "-" + strconv.Itoa(n)
		}
		seen[id] = true
		items = append(items, models.CatalogItem{ID: id, Name: name, Price: in.Price})
	}

	userID := middleware.UserID(c)
	if err := SaveCatalog(s.DB, userID, kind, items); err != nil {
		log.Printf("❌ [CATALOG] failed to save %s catalog for %s: %v", kind, userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "không thể lưu danh mục, vui lòng thử lại"})
	}
	return c.JSON(fiber.Map{"message": "Đã cập nhật danh mục.", "items": items})
}
