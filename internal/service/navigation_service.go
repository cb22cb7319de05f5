package service

import (
	"errors"

	"github.com/startupsaga/internal/db"
	"gorm.io/gorm"
)

var (
	ErrNavItemNotFound      = errors.New("navigation item not found")
	ErrNavItemLabelRequired = errors.New("navigation label is required")
)

// NavPositions are the menus a navigation item can belong to.
var NavPositions = []string{
	"header",
	"footer",
	"footer_company",
	"footer_links",
	"sidebar",
	"dashboard_sidebar",
}

// NavItemNode is a navigation item with its children nested.
type NavItemNode struct {
	Item     db.NavigationItem
	Children []db.NavigationItem
}

// NavigationService wraps menu persistence.
type NavigationService struct {
	db *gorm.DB
}

// NewNavigationService creates a NavigationService instance.
func NewNavigationService(gdb *gorm.DB) *NavigationService {
	return &NavigationService{db: gdb}
}

// NavItemInput represents fields accepted when creating an item.
type NavItemInput struct {
	Label     string
	URL       string
	ParentID  *uint
	Icon      string
	SortOrder int
	Position  string
	IsActive  *bool
	Settings  map[string]interface{}
}

// NavItemUpdateInput enumerates the updatable fields.
type NavItemUpdateInput struct {
	Label     *string
	URL       *string
	ParentID  *uint
	Icon      *string
	SortOrder *int
	Position  *string
	IsActive  *bool
	Settings  *map[string]interface{}
}

// ListByPosition returns active top-level items for a position with their
// children nested, ordered for display.
func (s *NavigationService) ListByPosition(position string) ([]NavItemNode, error) {
	query := s.db.Where("is_active = ?", true).Order("sort_order asc")
	if position != "" {
		query = query.Where("position = ?", position)
	}

	var items []db.NavigationItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}

	childrenOf := make(map[uint][]db.NavigationItem)
	var roots []db.NavigationItem
	for _, item := range items {
		if item.ParentID != nil {
			childrenOf[*item.ParentID] = append(childrenOf[*item.ParentID], item)
			continue
		}
		roots = append(roots, item)
	}

	nodes := make([]NavItemNode, 0, len(roots))
	for _, root := range roots {
		nodes = append(nodes, NavItemNode{Item: root, Children: childrenOf[root.ID]})
	}
	return nodes, nil
}

// ListAll returns every item, active or not, for the dashboard.
func (s *NavigationService) ListAll() ([]db.NavigationItem, error) {
	var items []db.NavigationItem
	if err := s.db.Order("position asc, sort_order asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches one item by id.
func (s *NavigationService) Get(id uint) (*db.NavigationItem, error) {
	var item db.NavigationItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNavItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new navigation item.
func (s *NavigationService) Create(input NavItemInput) (*db.NavigationItem, error) {
	if input.Label == "" {
		return nil, ErrNavItemLabelRequired
	}
	position := input.Position
	if position == "" {
		position = "header"
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	item := db.NavigationItem{
		Label:     input.Label,
		URL:       input.URL,
		ParentID:  input.ParentID,
		Icon:      input.Icon,
		SortOrder: input.SortOrder,
		Position:  position,
		IsActive:  active,
		Settings:  input.Settings,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing navigation item.
func (s *NavigationService) Update(id uint, input NavItemUpdateInput) (*db.NavigationItem, error) {
	var item db.NavigationItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNavItemNotFound
		}
		return nil, err
	}

	if input.Label != nil {
		if *input.Label == "" {
			return nil, ErrNavItemLabelRequired
		}
		item.Label = *input.Label
	}
	if input.URL != nil {
		item.URL = *input.URL
	}
	if input.ParentID != nil {
		if *input.ParentID == 0 {
			item.ParentID = nil
		} else {
			pid := *input.ParentID
			item.ParentID = &pid
		}
	}
	if input.Icon != nil {
		item.Icon = *input.Icon
	}
	if input.SortOrder != nil {
		item.SortOrder = *input.SortOrder
	}
	if input.Position != nil {
		item.Position = *input.Position
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	if input.Settings != nil {
		item.Settings = *input.Settings
	}

	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes an item and detaches its children to the top level.
func (s *NavigationService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&db.NavigationItem{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNavItemNotFound
		}
		return tx.Model(&db.NavigationItem{}).
			Where("parent_id = ?", id).
			Update("parent_id", nil).Error
	})
}
