package music

import (
	"net/http"

	"streaming-app/database"
	"streaming-app/internal/domain/music"

	"github.com/gin-gonic/gin"
)

func albumJSON(a music.Album) gin.H {
	h := gin.H{
		"id":           a.ID,
		"title":        a.Title,
		"artist_id":    a.ArtistID,
		"cover_image":  a.CoverImage,
		"release_year": a.ReleaseYear,
		"created_at":   a.CreatedAt,
	}
	if a.Artist != nil {
		h["artist_name"] = a.Artist.Name
	}
	return h
}

func ListAlbums(c *gin.Context) {
	var albums []music.Album
	if err := database.DB.Preload("Artist").
		Order("release_year DESC").
		Find(&albums).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get albums"})
		return
	}

	var counts []struct {
		AlbumID uint
		N       int64
	}
	if err := database.DB.Model(&music.Song{}).
		Select("album_id AS album_id, COUNT(id) AS n").
		Where("album_id IS NOT NULL").
		Group("album_id").
		Find(&counts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get albums"})
		return
	}
	countByAlbum := make(map[uint]int64, len(counts))
	for _, cnt := range counts {
		countByAlbum[cnt.AlbumID] = cnt.N
	}

	out := make([]gin.H, 0, len(albums))
	for _, a := range albums {
		h := albumJSON(a)
		h["song_count"] = countByAlbum[a.ID]
		out = append(out, h)
	}

	c.JSON(http.StatusOK, gin.H{"albums": out})
}

func GetAlbum(c *gin.Context) {
	var album music.Album
	if err := database.DB.Preload("Artist").
		Where("id = ?", c.Param("id")).First(&album).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Album not found"})
		return
	}

	var songs []music.Song
	if err := database.DB.Where("album_id = ?", album.ID).Find(&songs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get album"})
		return
	}

	h := albumJSON(album)
	h["songs"] = songs

	c.JSON(http.StatusOK, gin.H{"album": h})
}
