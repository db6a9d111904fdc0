package domain

import "time"

// TrajectoryMetadata describes one recorded motion file. Everything here is
// derived from the filesystem at call time; nothing is persisted elsewhere.
type TrajectoryMetadata struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	Category     string    `json:"category,omitempty"`
	FileSize     int64     `json:"file_size"`
	UploadDate   time.Time `json:"upload_date"`
	FrameCount   *int      `json:"frame_count"`
	FrameRate    *float64  `json:"frame_rate"`
	NumJoints    *int      `json:"num_joints"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
}

// ModelMetadata describes one articulated-body model description file.
type ModelMetadata struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	ModelName    string    `json:"model_name,omitempty"`
	RelativePath string    `json:"relative_path"`
	FileSize     int64     `json:"file_size"`
	UploadDate   time.Time `json:"upload_date"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
}

type TrajectoryListResponse struct {
	Trajectories []TrajectoryMetadata `json:"trajectories"`
	Total        int                  `json:"total"`
}

type ModelListResponse struct {
	Models []ModelMetadata `json:"models"`
	Total  int             `json:"total"`
}

type TrajectoryUploadResponse struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	Trajectory *TrajectoryMetadata `json:"trajectory,omitempty"`
}

type ModelUploadResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Model   *ModelMetadata `json:"model,omitempty"`
}
