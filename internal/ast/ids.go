package ast

// ExprID identifies an expression node in the builder arena.
type ExprID uint32

const NoExprID ExprID = 0

func (id ExprID) IsValid() bool { return id != NoExprID }

// StmtID identifies a statement node.
type StmtID uint32

const NoStmtID StmtID = 0

func (id StmtID) IsValid() bool { return id != NoStmtID }

// TypeExprID identifies a raw type expression.
type TypeExprID uint32

const NoTypeExprID TypeExprID = 0

func (id TypeExprID) IsValid() bool { return id != NoTypeExprID }

// ItemID identifies a global definition.
type ItemID uint32

const NoItemID ItemID = 0

func (id ItemID) IsValid() bool { return id != NoItemID }
