package models

// MusicRequest is the body forwarded to the music requests service
type MusicRequest struct {
	SongName   string `json:"song_name"`
	Artist     string `json:"artist,omitempty"`
	VeselicaID string `json:"id_veselica"`
}
