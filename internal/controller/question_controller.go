package controller

import (
	"errors"
	"satbank_backend/internal/model"
	"satbank_backend/internal/service"
	"satbank_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
	StorageService  *service.StorageService
}

func NewQuestionController(questionService *service.QuestionService, storageService *service.StorageService) *QuestionController {
	return &QuestionController{
		QuestionService: questionService,
		StorageService:  storageService,
	}
}

// Create godoc
// @Summary 创建题目
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.Question true "题目内容"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Router /api/v1/questions [post]
func (ctrl *QuestionController) Create(c *gin.Context) {
	var question model.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctrl.QuestionService.Create(&question); err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Created(c, question)
}

// Get godoc
// @Summary 查询题目
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/v1/questions/{id} [get]
func (ctrl *QuestionController) Get(c *gin.Context) {
	id, err := util.ParseUint(c.Param("id"))
	if err != nil {
		util.BadRequest(c, "invalid question id")
		return
	}

	question, err := ctrl.QuestionService.GetByID(id)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, question)
}

// Update godoc
// @Summary 更新题目
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Param request body model.Question true "题目内容"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/v1/questions/{id} [put]
func (ctrl *QuestionController) Update(c *gin.Context) {
	id, err := util.ParseUint(c.Param("id"))
	if err != nil {
		util.BadRequest(c, "invalid question id")
		return
	}

	var question model.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	question.ID = id

	if err := ctrl.QuestionService.Update(&question); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, question)
}

// Delete godoc
// @Summary 删除题目
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/questions/{id} [delete]
func (ctrl *QuestionController) Delete(c *gin.Context) {
	id, err := util.ParseUint(c.Param("id"))
	if err != nil {
		util.BadRequest(c, "invalid question id")
		return
	}

	if err := ctrl.QuestionService.Delete(id); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, nil)
}

// List godoc
// @Summary 题目列表（支持筛选）
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param textSearch query string false "题干关键字"
// @Param subjectTags query []string false "科目标签"
// @Param difficulty query string false "难度"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/questions [get]
func (ctrl *QuestionController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	var filter model.QuestionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	var (
		questions []model.Question
		total     int64
		err       error
	)
	if filter.TextSearch == "" && len(filter.SubjectTags) == 0 && filter.Difficulty == "" && len(filter.ExcludeIDs) == 0 {
		questions, total, err = ctrl.QuestionService.List(limit, offset)
	} else {
		questions, total, err = ctrl.QuestionService.Filter(filter, limit, offset)
	}
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, util.PageResponse{
		List:  questions,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// UploadImage godoc
// @Summary 上传题目图片
// @Tags questions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "图片文件"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/v1/questions/images [post]
func (ctrl *QuestionController) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "missing file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	defer file.Close()

	url, err := ctrl.StorageService.UploadQuestionImage(c.Request.Context(), fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	util.Success(c, gin.H{"url": url})
}
