package models

const MaxLlamaNameLength = 100

type Llama struct {
	ID     int64      `gorm:"primaryKey;autoIncrement"`
	Name   string     `gorm:"uniqueIndex;not null;size:100"`
	Age    int        `gorm:"not null"`
	Color  LlamaColor `gorm:"type:varchar(16);not null"`
	Rating int        `gorm:"not null"`
}

func (Llama) TableName() string { return "llamas" }

// LlamaPicture points at the stored PNG for one llama.
type LlamaPicture struct {
	ID                int64  `gorm:"primaryKey;autoIncrement"`
	LlamaID           int64  `gorm:"uniqueIndex;not null"`
	ImageFileLocation string `gorm:"not null"`
}

func (LlamaPicture) TableName() string { return "llama_picture_locations" }
