package music

import (
	"net/http"

	"streaming-app/database"
	"streaming-app/internal/domain/music"

	"github.com/gin-gonic/gin"
)

// LikeSong toggles a song in the caller's liked collection.
func LikeSong(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var song music.Song
	if err := database.DB.Where("id = ?", c.Param("id")).First(&song).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
		return
	}

	var existing music.LikedSong
	err := database.DB.Where("user_id = ? AND song_id = ?", userID, song.ID).First(&existing).Error
	if err == nil {
		if err := database.DB.Delete(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update like status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"liked": false, "message": "Song removed from liked songs"})
		return
	}

	like := music.LikedSong{UserID: userID, SongID: song.ID}
	if err := database.DB.Create(&like).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update like status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": true, "message": "Song added to liked songs"})
}

func ListLiked(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var likes []music.LikedSong
	if err := database.DB.Where("user_id = ?", userID).
		Order("liked_at DESC").
		Find(&likes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get liked songs"})
		return
	}

	out := make([]gin.H, 0, len(likes))
	for _, l := range likes {
		var song music.Song
		if err := database.DB.Preload("Artist").Preload("Album").
			Where("id = ?", l.SongID).First(&song).Error; err != nil {
			continue
		}
		h := songJSON(song)
		h["is_liked"] = true
		h["liked_at"] = l.LikedAt
		out = append(out, h)
	}

	c.JSON(http.StatusOK, gin.H{"songs": out})
}

// History returns the caller's most recent plays, one entry per song.
func History(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var plays []music.PlayHistory
	if err := database.DB.Where("user_id = ?", userID).
		Order("played_at DESC").
		Limit(200).
		Find(&plays).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get play history"})
		return
	}

	// Keep the most recent play per song, capped at 20.
	seen := make(map[uint]bool)
	out := make([]gin.H, 0, 20)
	for _, p := range plays {
		if seen[p.SongID] {
			continue
		}
		seen[p.SongID] = true

		var song music.Song
		if err := database.DB.Preload("Artist").Preload("Album").
			Where("id = ?", p.SongID).First(&song).Error; err != nil {
			continue
		}
		h := songJSON(song)
		h["played_at"] = p.PlayedAt
		out = append(out, h)
		if len(out) == 20 {
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{"history": out})
}

func Home(c *gin.Context) {
	var topSongs, newReleases []music.Song
	if err := database.DB.Preload("Artist").
		Order("play_count DESC").Limit(10).
		Find(&topSongs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get home data"})
		return
	}
	if err := database.DB.Preload("Artist").
		Order("created_at DESC").Limit(10).
		Find(&newReleases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get home data"})
		return
	}

	var featuredArtists []artistWithCount
	if err := database.DB.Model(&music.Artist{}).
		Select("artists.*, COUNT(songs.id) AS song_count").
		Joins("LEFT JOIN songs ON songs.artist_id = artists.id").
		Group("artists.id").
		Order("song_count DESC").
		Limit(6).
		Find(&featuredArtists).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get home data"})
		return
	}

	var featuredAlbums []music.Album
	if err := database.DB.Preload("Artist").
		Order("release_year DESC").Limit(6).
		Find(&featuredAlbums).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get home data"})
		return
	}

	top := make([]gin.H, 0, len(topSongs))
	for _, s := range topSongs {
		top = append(top, songJSON(s))
	}
	fresh := make([]gin.H, 0, len(newReleases))
	for _, s := range newReleases {
		fresh = append(fresh, songJSON(s))
	}
	albumsOut := make([]gin.H, 0, len(featuredAlbums))
	for _, a := range featuredAlbums {
		albumsOut = append(albumsOut, albumJSON(a))
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"topSongs":        top,
			"newReleases":     fresh,
			"featuredArtists": featuredArtists,
			"featuredAlbums":  albumsOut,
		},
	})
}
