package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/thechaitanyaanand/Minsoto/internal/database"
	"github.com/thechaitanyaanand/Minsoto/internal/hub"
	"github.com/thechaitanyaanand/Minsoto/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

type PostInput struct {
	Content     string `json:"content" binding:"required"`
	PostType    string `json:"post_type"`
	Visibility  string `json:"visibility"`
	CircleID    *uint  `json:"circle_id"`
	ImageURL    string `json:"image_url"`
	InterestIDs []uint `json:"interest_ids"`
}

type CommentInput struct {
	Content string `json:"content" binding:"required"`
}

type PostResponse struct {
	ID            uint               `json:"id"`
	CreatedAt     time.Time          `json:"created_at"`
	Author        PublicUserResponse `json:"author"`
	Content       string             `json:"content"`
	PostType      models.PostType    `json:"post_type"`
	Visibility    models.Visibility  `json:"visibility"`
	CircleID      *uint              `json:"circle_id,omitempty"`
	ImageURL      string             `json:"image_url,omitempty"`
	IsHighlighted bool               `json:"is_highlighted"`
	Interests     []InterestResponse `json:"interests"`
	LikeCount     int64              `json:"like_count"`
	CommentCount  int64              `json:"comment_count"`
	LikedByMe     bool               `json:"liked_by_me"`
}

type CommentResponse struct {
	ID        uint               `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Author    PublicUserResponse `json:"author"`
	Content   string             `json:"content"`
}

func newPostResponse(post models.Post, viewerID uint) PostResponse {
	interests := make([]InterestResponse, 0, len(post.Interests))
	for _, interest := range post.Interests {
		if interest != nil {
			interests = append(interests, newInterestResponse(*interest))
		}
	}

	var likeCount, commentCount int64
	database.DB.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likeCount)
	database.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount)

	var likedByMe bool
	var like models.Like
	if err := database.DB.Where("post_id = ? AND user_id = ?", post.ID, viewerID).First(&like).Error; err == nil {
		likedByMe = true
	}

	return PostResponse{
		ID:            post.ID,
		CreatedAt:     post.CreatedAt,
		Author:        buildPublicUserResponse(post.Author),
		Content:       post.Content,
		PostType:      post.PostType,
		Visibility:    post.Visibility,
		CircleID:      post.CircleID,
		ImageURL:      post.ImageURL,
		IsHighlighted: post.IsHighlighted,
		Interests:     interests,
		LikeCount:     likeCount,
		CommentCount:  commentCount,
		LikedByMe:     likedByMe,
	}
}

func newCommentResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		CreatedAt: comment.CreatedAt,
		Author:    buildPublicUserResponse(comment.Author),
		Content:   comment.Content,
	}
}

// endregion

// connectedUserIDs returns the IDs of every user sharing a connection edge
// with the viewer.
func connectedUserIDs(viewerID uint) []uint {
	var connections []models.Connection
	database.DB.Where("user_a_id = ? OR user_b_id = ?", viewerID, viewerID).Find(&connections)

	ids := make([]uint, 0, len(connections))
	for _, conn := range connections {
		ids = append(ids, conn.OtherUserID(viewerID))
	}
	return ids
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Publishes a new post to the feed, optionally inside a circle the viewer belongs to.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PostInput true "Post Info"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not a member of the circle"
// @Router       /posts [post]
func CreatePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	postType := models.PostType(input.PostType)
	if postType == "" {
		postType = models.PostText
	}
	visibility := models.Visibility(input.Visibility)
	if visibility == "" {
		visibility = models.VisibilityPublic
	}

	if input.CircleID != nil {
		membership, err := circleMembership(*input.CircleID, viewerID.(uint))
		if err != nil || membership == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this circle"})
			return
		}
	}

	var interests []*models.Interest
	if len(input.InterestIDs) > 0 {
		database.DB.Find(&interests, input.InterestIDs)
	}

	post := models.Post{
		AuthorID:   viewerID.(uint),
		CircleID:   input.CircleID,
		Content:    input.Content,
		PostType:   postType,
		Visibility: visibility,
		ImageURL:   input.ImageURL,
		Interests:  interests,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	database.DB.Preload("Author").Preload("Interests").First(&post, post.ID)
	response := newPostResponse(post, viewerID.(uint))

	// Notify circle watchers after the write has been committed.
	if post.CircleID != nil {
		hub.GlobalHub.Broadcast(*post.CircleID, hub.Event{Type: "new_post", Payload: response})
	}

	c.JSON(http.StatusCreated, response)
}

// GetFeed godoc
// @Summary      Get the content feed
// @Description  Returns a paginated feed: global public posts, or posts from the viewer's connections.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        feed_type query string false "global (default) or connections"
// @Param        filter    query string false "Filter by interest name"
// @Param        page      query int    false "Page number" default(1)
// @Param        limit     query int    false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Router       /posts/feed [get]
func GetFeed(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	feedType := c.DefaultQuery("feed_type", "global")
	filter := c.DefaultQuery("filter", "all")
	page, limit := pageParams(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "10"))
	offset := (page - 1) * limit

	query := database.DB.Model(&models.Post{})

	if feedType == "connections" {
		authorIDs := append(connectedUserIDs(viewerID.(uint)), viewerID.(uint))
		query = query.Where("author_id IN (?)", authorIDs).
			Where("visibility IN (?)", []models.Visibility{models.VisibilityPublic, models.VisibilityConnections})
	} else {
		query = query.Where("visibility = ?", models.VisibilityPublic)
	}

	if filter != "all" && filter != "" {
		var interest models.Interest
		if err := database.DB.Where("name = ?", filter).First(&interest).Error; err == nil {
			query = query.Joins("JOIN post_interests pi ON pi.post_id = posts.id").
				Where("pi.interest_id = ?", interest.ID)
		}
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count posts"})
		return
	}

	var posts []models.Post
	if err := query.Preload("Author").Preload("Interests").
		Order("posts.created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	response := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		response = append(response, newPostResponse(post, viewerID.(uint)))
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(response, totalItems, page, limit))
}

// ToggleLikePost godoc
// @Summary      Like or unlike a post
// @Description  Toggles the viewer's like on a post.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {object}  map[string]bool "{"liked": true}"
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id}/like [post]
func ToggleLikePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var like models.Like
	err = database.DB.Where("post_id = ? AND user_id = ?", postID, viewerID).First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		like = models.Like{UserID: viewerID.(uint), PostID: uint(postID)}
		if err := database.DB.Create(&like).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"liked": true})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check like"})
		return
	}

	if err := database.DB.Delete(&models.Like{}, "post_id = ? AND user_id = ?", postID, viewerID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": false})
}

// GetComments godoc
// @Summary      List comments on a post
// @Description  Lists a post's comments, oldest first.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {array}  CommentResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id}/comments [get]
func GetComments(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var comments []models.Comment
	if err := database.DB.Preload("Author").Where("post_id = ?", postID).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	response := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		response = append(response, newCommentResponse(comment))
	}
	c.JSON(http.StatusOK, response)
}

// CreateComment godoc
// @Summary      Comment on a post
// @Description  Adds a comment to a post.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int          true "Post ID"
// @Param        input body CommentInput true "Comment"
// @Success      201  {object}  CommentResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id}/comments [post]
func CreateComment(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := models.Comment{
		AuthorID: viewerID.(uint),
		PostID:   uint(postID),
		Content:  input.Content,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	database.DB.Preload("Author").First(&comment, comment.ID)
	c.JSON(http.StatusCreated, newCommentResponse(comment))
}
