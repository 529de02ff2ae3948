package music

import (
	"net/http"

	"streaming-app/database"
	"streaming-app/internal/domain/music"

	"github.com/gin-gonic/gin"
)

type artistWithCount struct {
	music.Artist
	SongCount int64 `json:"song_count"`
}

func ListArtists(c *gin.Context) {
	var artists []artistWithCount
	err := database.DB.Model(&music.Artist{}).
		Select("artists.*, COUNT(songs.id) AS song_count").
		Joins("LEFT JOIN songs ON songs.artist_id = artists.id").
		Group("artists.id").
		Order("song_count DESC").
		Find(&artists).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get artists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"artists": artists})
}

func GetArtist(c *gin.Context) {
	var artist music.Artist
	if err := database.DB.Where("id = ?", c.Param("id")).First(&artist).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artist not found"})
		return
	}

	var songs []music.Song
	if err := database.DB.Preload("Album").
		Where("artist_id = ?", artist.ID).
		Order("play_count DESC").
		Find(&songs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get artist"})
		return
	}

	var albums []music.Album
	if err := database.DB.Where("artist_id = ?", artist.ID).Find(&albums).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get artist"})
		return
	}

	songsOut := make([]gin.H, 0, len(songs))
	for _, s := range songs {
		songsOut = append(songsOut, songJSON(s))
	}

	c.JSON(http.StatusOK, gin.H{
		"artist": gin.H{
			"id":         artist.ID,
			"name":       artist.Name,
			"bio":        artist.Bio,
			"image":      artist.Image,
			"created_at": artist.CreatedAt,
			"songs":      songsOut,
			"albums":     albums,
		},
	})
}
