package dto

type SubmitJobRequest struct {
	Title           string   `json:"title"`
	ChapterText     string   `json:"chapter_text" binding:"required"`
	CharacterName   string   `json:"character_name" binding:"required"`
	CharacterImages []string `json:"character_images"`
}

type SubmitJobResponse struct {
	JobID string `json:"job_id"`
}
