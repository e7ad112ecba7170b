package domain

import (
	"sort"
	"time"
)

// IncomeExpenseType classifies a category.
type IncomeExpenseType string

const (
	IncomeExpenseTypeIncome  IncomeExpenseType = "Income"
	IncomeExpenseTypeExpense IncomeExpenseType = "Expense"
)

// IsValid reports whether t is a known category type.
func (t IncomeExpenseType) IsValid() bool {
	return t == IncomeExpenseTypeIncome || t == IncomeExpenseTypeExpense
}

// IncomeExpense is a user-defined category, optionally nested under a parent.
type IncomeExpense struct {
	ID          string
	UserID      string
	TypeID      IncomeExpenseType
	ParentID    *string
	Name        string
	Description string
	Icon        string
	CreatedAt   time.Time
	DeletedAt   *time.Time
}

// IncomeExpenseNode is a category together with its children.
type IncomeExpenseNode struct {
	*IncomeExpense
	Children []*IncomeExpenseNode
}

// BuildIncomeExpenseTree arranges categories into a forest.
// A category whose parent is not in the input is returned as a root.
// Siblings are ordered by name, then id.
func BuildIncomeExpenseTree(items []*IncomeExpense) []*IncomeExpenseNode {
	nodes := make(map[string]*IncomeExpenseNode, len(items))
	for _, item := range items {
		nodes[item.ID] = &IncomeExpenseNode{IncomeExpense: item}
	}

	var roots []*IncomeExpenseNode
	for _, item := range items {
		node := nodes[item.ID]
		if item.ParentID == nil || *item.ParentID == item.ID {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*item.ParentID]
		if !ok || createsCycle(nodes, item.ID, *item.ParentID) {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortNodes(roots)
	return roots
}

// createsCycle reports whether following parents from parentID leads back to id.
func createsCycle(nodes map[string]*IncomeExpenseNode, id, parentID string) bool {
	seen := map[string]bool{}
	current := parentID
	for {
		if current == id {
			return true
		}
		if seen[current] {
			return false
		}
		seen[current] = true
		node, ok := nodes[current]
		if !ok || node.ParentID == nil {
			return false
		}
		current = *node.ParentID
	}
}

func sortNodes(nodes []*IncomeExpenseNode) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Name != nodes[j].Name {
			return nodes[i].Name < nodes[j].Name
		}
		return nodes[i].ID < nodes[j].ID
	})
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}
