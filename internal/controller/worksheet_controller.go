package controller

import (
	"errors"
	"satbank_backend/internal/model"
	"satbank_backend/internal/service"
	"satbank_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type WorksheetController struct {
	WorksheetService *service.WorksheetService
	WorksheetRepo    service.WorksheetStore
}

func NewWorksheetController(worksheetService *service.WorksheetService, worksheetRepo service.WorksheetStore) *WorksheetController {
	return &WorksheetController{
		WorksheetService: worksheetService,
		WorksheetRepo:    worksheetRepo,
	}
}

// Generate godoc
// @Summary 根据题目ID生成练习卷
// @Tags worksheets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.GenerateWorksheetRequest true "生成参数"
// @Success 200 {object} util.Response{data=model.WorksheetDocument}
// @Failure 400 {object} util.Response
// @Router /api/v1/worksheets/generate [post]
func (ctrl *WorksheetController) Generate(c *gin.Context) {
	var req model.GenerateWorksheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	worksheet := &model.Worksheet{
		Title:       req.Title,
		Description: req.Description,
		QuestionIDs: req.QuestionIDs,
	}

	generated, err := ctrl.WorksheetService.Generate(worksheet, req.RandomizeQuestions, req.RandomizeAnswers)
	if err != nil {
		ctrl.handleGenerateError(c, err)
		return
	}

	ctrl.respondWithDocument(c, generated, req.IncludeAnswerKey, req.Save)
}

// GenerateFromFilters godoc
// @Summary 按筛选条件随机抽题生成练习卷
// @Tags worksheets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.GenerateFromFiltersRequest true "生成参数"
// @Success 200 {object} util.Response{data=model.WorksheetDocument}
// @Failure 400 {object} util.Response
// @Router /api/v1/worksheets/generate-from-filters [post]
func (ctrl *WorksheetController) GenerateFromFilters(c *gin.Context) {
	var req model.GenerateFromFiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	generated, err := ctrl.WorksheetService.GenerateFromFilters(
		req.Title, req.Description, req.Filter, req.Count,
		req.RandomizeQuestions, req.RandomizeAnswers,
	)
	if err != nil {
		ctrl.handleGenerateError(c, err)
		return
	}

	ctrl.respondWithDocument(c, generated, req.IncludeAnswerKey, req.Save)
}

// Preview godoc
// @Summary 预览练习卷（含正确答案）
// @Tags worksheets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.GenerateWorksheetRequest true "生成参数"
// @Success 200 {object} util.Response{data=[]model.PreviewQuestion}
// @Failure 400 {object} util.Response
// @Router /api/v1/worksheets/preview [post]
func (ctrl *WorksheetController) Preview(c *gin.Context) {
	var req model.GenerateWorksheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	worksheet := &model.Worksheet{
		Title:       req.Title,
		Description: req.Description,
		QuestionIDs: req.QuestionIDs,
	}

	generated, err := ctrl.WorksheetService.Generate(worksheet, req.RandomizeQuestions, req.RandomizeAnswers)
	if err != nil {
		ctrl.handleGenerateError(c, err)
		return
	}

	util.Success(c, ctrl.WorksheetService.PrepareForPreview(generated))
}

// Get godoc
// @Summary 查询练习卷
// @Tags worksheets
// @Produce json
// @Security BearerAuth
// @Param id path int true "练习卷ID"
// @Success 200 {object} util.Response{data=model.Worksheet}
// @Failure 404 {object} util.Response
// @Router /api/v1/worksheets/{id} [get]
func (ctrl *WorksheetController) Get(c *gin.Context) {
	id, err := util.ParseUint(c.Param("id"))
	if err != nil {
		util.BadRequest(c, "invalid worksheet id")
		return
	}

	worksheet, err := ctrl.WorksheetRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, worksheet)
}

// List godoc
// @Summary 练习卷列表
// @Tags worksheets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Worksheet}
// @Router /api/v1/worksheets [get]
func (ctrl *WorksheetController) List(c *gin.Context) {
	worksheets, err := ctrl.WorksheetRepo.FindAll()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, worksheets)
}

func (ctrl *WorksheetController) respondWithDocument(c *gin.Context, generated *model.GeneratedWorksheet, includeAnswerKey, save bool) {
	if !save {
		// Unsaved generations still return the print contract, just without
		// a persisted worksheet id.
		util.Success(c, ctrl.WorksheetService.BuildDocument(generated, includeAnswerKey))
		return
	}

	doc, err := ctrl.WorksheetService.PrepareForPDF(generated, includeAnswerKey)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, doc)
}

func (ctrl *WorksheetController) handleGenerateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrNoQuestions),
		errors.Is(err, util.ErrNoQuestionsMatching),
		errors.Is(err, util.ErrInvalidQuestionCount):
		util.BadRequest(c, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}
