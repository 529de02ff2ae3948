package music

import (
	"time"

	"streaming-app/internal/domain/users"
)

type Artist struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	Bio       string `json:"bio"`
	Image     string `gorm:"default:'/images/default-artist.png'" json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

type Album struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	ArtistID    *uint  `gorm:"index" json:"artist_id"`
	Artist      *Artist `json:"-"`
	CoverImage  string `gorm:"default:'/images/default-album.png'" json:"cover_image"`
	ReleaseYear int    `json:"release_year"`
	CreatedAt   time.Time `json:"created_at"`
}

type Song struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Title      string  `gorm:"not null" json:"title"`
	ArtistID   *uint   `gorm:"index" json:"artist_id"`
	Artist     *Artist `json:"-"`
	AlbumID    *uint   `gorm:"index" json:"album_id"`
	Album      *Album  `json:"-"`
	Duration   int     `gorm:"default:0" json:"duration"`
	FilePath   string  `gorm:"not null" json:"file_path"`
	CoverImage string  `json:"cover_image"`
	IsPremium  bool    `gorm:"column:is_premium;not null;default:false" json:"is_premium"`
	PlayCount  int64   `gorm:"column:play_count;not null;default:0" json:"play_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type Playlist struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	User        users.User `json:"-"`
	CoverImage  string `gorm:"default:'/images/default-playlist.png'" json:"cover_image"`
	IsPublic    bool   `gorm:"column:is_public;not null;default:true" json:"is_public"`
	ShareSlug   *string `gorm:"uniqueIndex:idx_playlists_share_slug" json:"share_slug,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type PlaylistSong struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	PlaylistID uint      `gorm:"not null;index;uniqueIndex:idx_playlist_song" json:"playlist_id"`
	SongID     uint      `gorm:"not null;uniqueIndex:idx_playlist_song" json:"song_id"`
	AddedAt    time.Time `gorm:"autoCreateTime" json:"added_at"`
}

type LikedSong struct {
	ID      uint      `gorm:"primaryKey" json:"-"`
	UserID  uint      `gorm:"not null;uniqueIndex:idx_liked_user_song" json:"user_id"`
	SongID  uint      `gorm:"not null;uniqueIndex:idx_liked_user_song" json:"song_id"`
	LikedAt time.Time `gorm:"autoCreateTime" json:"liked_at"`
}

type PlayHistory struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	UserID   uint      `gorm:"not null;index" json:"user_id"`
	SongID   uint      `gorm:"not null;index" json:"song_id"`
	PlayedAt time.Time `gorm:"autoCreateTime" json:"played_at"`
}

func (PlayHistory) TableName() string {
	return "play_history"
}
