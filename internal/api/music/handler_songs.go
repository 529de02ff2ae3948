package music

import (
	"net/http"
	"strconv"

	"streaming-app/database"
	"streaming-app/internal/app/http/middleware"
	"streaming-app/internal/domain/music"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func songJSON(s music.Song) gin.H {
	h := gin.H{
		"id":          s.ID,
		"title":       s.Title,
		"artist_id":   s.ArtistID,
		"album_id":    s.AlbumID,
		"duration":    s.Duration,
		"file_path":   s.FilePath,
		"cover_image": s.CoverImage,
		"is_premium":  s.IsPremium,
		"play_count":  s.PlayCount,
		"created_at":  s.CreatedAt,
	}
	if s.Artist != nil {
		h["artist_name"] = s.Artist.Name
	}
	if s.Album != nil {
		h["album_title"] = s.Album.Title
	}
	return h
}

func likedSongIDs(db *gorm.DB, userID uint) (map[uint]bool, error) {
	var likes []music.LikedSong
	if err := db.Where("user_id = ?", userID).Find(&likes).Error; err != nil {
		return nil, err
	}
	ids := make(map[uint]bool, len(likes))
	for _, l := range likes {
		ids[l.SongID] = true
	}
	return ids, nil
}

func ListSongs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	q := database.DB.Model(&music.Song{}).
		Preload("Artist").
		Preload("Album")

	if search := c.Query("search"); search != "" {
		q = q.Joins("LEFT JOIN artists ON artists.id = songs.artist_id").
			Where("songs.title LIKE ? OR artists.name LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if artist := c.Query("artist"); artist != "" {
		q = q.Where("songs.artist_id = ?", artist)
	}
	if album := c.Query("album"); album != "" {
		q = q.Where("songs.album_id = ?", album)
	}

	var songs []music.Song
	if err := q.Order("songs.play_count DESC").Limit(limit).Offset(offset).Find(&songs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get songs"})
		return
	}

	liked := map[uint]bool{}
	if user := middleware.CurrentUser(c); user != nil {
		var err error
		if liked, err = likedSongIDs(database.DB, user.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get songs"})
			return
		}
	}

	out := make([]gin.H, 0, len(songs))
	for _, s := range songs {
		h := songJSON(s)
		h["is_liked"] = liked[s.ID]
		out = append(out, h)
	}

	c.JSON(http.StatusOK, gin.H{"songs": out})
}

func GetSong(c *gin.Context) {
	var song music.Song
	if err := database.DB.Preload("Artist").Preload("Album").
		Where("id = ?", c.Param("id")).First(&song).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
		return
	}

	h := songJSON(song)

	user := middleware.CurrentUser(c)
	if song.IsPremium && (user == nil || !user.IsPremium) {
		h["file_path"] = nil
		h["requires_premium"] = true
	}

	c.JSON(http.StatusOK, gin.H{"song": h})
}

// PlaySong resolves the playable file path, bumps the play counter and, for
// signed-in listeners, appends to play history. Premium tracks are gated on
// the (lazily corrected) entitlement.
func PlaySong(c *gin.Context) {
	var song music.Song
	if err := database.DB.Where("id = ?", c.Param("id")).First(&song).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
		return
	}

	user := middleware.CurrentUser(c)
	if song.IsPremium && (user == nil || !user.IsPremium) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":            "Premium subscription required",
			"requires_premium": true,
		})
		return
	}

	if err := database.DB.Model(&music.Song{}).
		Where("id = ?", song.ID).
		UpdateColumn("play_count", gorm.Expr("play_count + 1")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to play song"})
		return
	}

	if user != nil {
		entry := music.PlayHistory{UserID: user.ID, SongID: song.ID}
		if err := database.DB.Create(&entry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to play song"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"file_path": song.FilePath})
}
