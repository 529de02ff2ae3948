package music

import (
	"net/http"

	"streaming-app/database"
	"streaming-app/internal/app/http/middleware"
	"streaming-app/internal/domain/music"

	"github.com/gin-gonic/gin"
)

func ListPlaylists(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var playlists []music.Playlist
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&playlists).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get playlists"})
		return
	}

	out := make([]gin.H, 0, len(playlists))
	for _, p := range playlists {
		var count int64
		if err := database.DB.Model(&music.PlaylistSong{}).
			Where("playlist_id = ?", p.ID).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get playlists"})
			return
		}
		out = append(out, gin.H{
			"id":          p.ID,
			"name":        p.Name,
			"description": p.Description,
			"user_id":     p.UserID,
			"cover_image": p.CoverImage,
			"is_public":   p.IsPublic,
			"created_at":  p.CreatedAt,
			"song_count":  count,
		})
	}

	c.JSON(http.StatusOK, gin.H{"playlists": out})
}

func CreatePlaylist(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Playlist name is required"})
		return
	}

	playlist := music.Playlist{
		Name:        input.Name,
		Description: input.Description,
		UserID:      userID,
		IsPublic:    true,
	}
	if err := database.DB.Create(&playlist).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create playlist"})
		return
	}

	if _, err := music.EnsureShareSlug(database.DB, &playlist); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create playlist"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Playlist created", "playlist": playlist})
}

// GetSharedPlaylist resolves a share link. Private playlists stay hidden from
// everyone but their owner, the slug is not a bearer secret.
func GetSharedPlaylist(c *gin.Context) {
	var playlist music.Playlist
	if err := database.DB.Where("share_slug = ?", c.Param("slug")).First(&playlist).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Playlist not found"})
		return
	}

	user := middleware.CurrentUser(c)
	if !playlist.IsPublic && (user == nil || user.ID != playlist.UserID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Playlist not found"})
		return
	}

	respondPlaylist(c, playlist)
}

func GetPlaylist(c *gin.Context) {
	var playlist music.Playlist
	if err := database.DB.Where("id = ?", c.Param("id")).First(&playlist).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Playlist not found"})
		return
	}

	user := middleware.CurrentUser(c)
	if !playlist.IsPublic && (user == nil || user.ID != playlist.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	respondPlaylist(c, playlist)
}

func respondPlaylist(c *gin.Context, playlist music.Playlist) {
	var entries []music.PlaylistSong
	if err := database.DB.Where("playlist_id = ?", playlist.ID).
		Order("added_at DESC").
		Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get playlist"})
		return
	}

	songsOut := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		var song music.Song
		if err := database.DB.Preload("Artist").Preload("Album").
			Where("id = ?", e.SongID).First(&song).Error; err != nil {
			continue
		}
		h := songJSON(song)
		h["added_at"] = e.AddedAt
		songsOut = append(songsOut, h)
	}

	c.JSON(http.StatusOK, gin.H{
		"playlist": gin.H{
			"id":          playlist.ID,
			"name":        playlist.Name,
			"description": playlist.Description,
			"user_id":     playlist.UserID,
			"cover_image": playlist.CoverImage,
			"is_public":   playlist.IsPublic,
			"share_slug":  playlist.ShareSlug,
			"created_at":  playlist.CreatedAt,
			"songs":       songsOut,
		},
	})
}

func AddSongToPlaylist(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		SongID uint `json:"songId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "songId is required"})
		return
	}

	var playlist music.Playlist
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&playlist).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Playlist not found"})
		return
	}

	var song music.Song
	if err := database.DB.Where("id = ?", input.SongID).First(&song).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
		return
	}

	var existing music.PlaylistSong
	if err := database.DB.Where("playlist_id = ? AND song_id = ?", playlist.ID, song.ID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Song already in playlist"})
		return
	}

	entry := music.PlaylistSong{PlaylistID: playlist.ID, SongID: song.ID}
	if err := database.DB.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add song to playlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Song added to playlist"})
}
