// Package model defines database models for persistence layer.
package model

// All returns every model managed by the schema migration, parents first.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&RefreshTokenModel{},
		&CategoryModel{},
		&TransactionModel{},
		&GoalModel{},
		&MilestoneModel{},
		&HabitModel{},
		&HabitLogModel{},
		&EmailQueueModel{},
	}
}
