package controller

import (
	"errors"
	"net/http"
	"satbank_backend/internal/model"
	"satbank_backend/internal/service"
	"satbank_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResponseController struct {
	ScoringService *service.ScoringService
}

func NewResponseController(scoringService *service.ScoringService) *ResponseController {
	return &ResponseController{ScoringService: scoringService}
}

// RecordAnswer godoc
// @Summary 记录单次作答结果
// @Tags responses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.AnswerSubmission true "作答结果"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/v1/responses/answers [post]
func (ctrl *ResponseController) RecordAnswer(c *gin.Context) {
	var req model.AnswerSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctrl.ScoringService.RecordAnswer(req.StudentID, req.WorksheetID, req.QuestionID, req.Correct); err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Created(c, nil)
}

// RecordBulkAnswers godoc
// @Summary 批量记录作答结果
// @Tags responses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.BulkAnswerRequest true "作答结果列表"
// @Success 200 {object} util.Response{data=model.BulkRecordResult}
// @Failure 400 {object} util.Response
// @Router /api/v1/responses/answers/bulk [post]
func (ctrl *ResponseController) RecordBulkAnswers(c *gin.Context) {
	var req model.BulkAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	util.Success(c, ctrl.ScoringService.RecordBulkAnswers(req.Responses))
}

// RecordResponse godoc
// @Summary 提交原始答案（选择题自动判分）
// @Tags responses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ResponseSubmission true "学生答案"
// @Success 201 {object} util.Response{data=model.StudentResponse}
// @Failure 404 {object} util.Response
// @Router /api/v1/responses [post]
func (ctrl *ResponseController) RecordResponse(c *gin.Context) {
	var req model.ResponseSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	response, err := ctrl.ScoringService.RecordResponse(req.StudentID, req.WorksheetID, req.QuestionID, req.Answer)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Created(c, response)
}

// Ungraded godoc
// @Summary 待批改答案列表
// @Tags responses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.StudentResponse}
// @Router /api/v1/responses/ungraded [get]
func (ctrl *ResponseController) Ungraded(c *gin.Context) {
	responses, err := ctrl.ScoringService.ResponsesForGrading()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, responses)
}

// Grade godoc
// @Summary 批改答案
// @Tags responses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "答案ID"
// @Param request body model.GradeRequest true "批改结果"
// @Success 200 {object} util.Response{data=model.StudentResponse}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/v1/responses/{id}/grade [post]
func (ctrl *ResponseController) Grade(c *gin.Context) {
	var req model.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	id, err := util.ParseUint(c.Param("id"))
	if err != nil {
		util.BadRequest(c, "invalid response id")
		return
	}

	claims := util.GetUserFromContext(c)
	gradedBy := ""
	if claims != nil {
		gradedBy = claims.Email
	}

	response, err := ctrl.ScoringService.GradeResponse(id, req.Correct, gradedBy, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrResponseNotFound):
			util.NotFound(c)
		case errors.Is(err, util.ErrAlreadyGraded):
			util.Error(c, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}

	util.Success(c, response)
}

// WorksheetStatus godoc
// @Summary 学生练习卷完成情况
// @Tags responses
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "学生ID"
// @Param worksheetId path int true "练习卷ID"
// @Success 200 {object} util.Response{data=model.WorksheetStatus}
// @Failure 404 {object} util.Response
// @Router /api/v1/responses/students/{studentId}/worksheets/{worksheetId}/status [get]
func (ctrl *ResponseController) WorksheetStatus(c *gin.Context) {
	worksheetID, err := util.ParseUint(c.Param("worksheetId"))
	if err != nil {
		util.BadRequest(c, "invalid worksheet id")
		return
	}

	status, err := ctrl.ScoringService.StudentWorksheetStatus(c.Param("studentId"), worksheetID)
	if err != nil {
		if errors.Is(err, util.ErrWorksheetNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, status)
}

// WorksheetQuestions godoc
// @Summary 练习卷答题视图
// @Tags responses
// @Produce json
// @Security BearerAuth
// @Param worksheetId path int true "练习卷ID"
// @Success 200 {object} util.Response{data=[]model.WorksheetQuestion}
// @Failure 404 {object} util.Response
// @Router /api/v1/responses/worksheets/{worksheetId}/questions [get]
func (ctrl *ResponseController) WorksheetQuestions(c *gin.Context) {
	worksheetID, err := util.ParseUint(c.Param("worksheetId"))
	if err != nil {
		util.BadRequest(c, "invalid worksheet id")
		return
	}

	questions, err := ctrl.ScoringService.QuestionsForWorksheet(worksheetID)
	if err != nil {
		if errors.Is(err, util.ErrWorksheetNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, questions)
}

// AvailableWorksheets godoc
// @Summary 可作答练习卷列表
// @Tags responses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.WorksheetSummary}
// @Router /api/v1/responses/worksheets [get]
func (ctrl *ResponseController) AvailableWorksheets(c *gin.Context) {
	summaries, err := ctrl.ScoringService.AvailableWorksheets()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, summaries)
}

// ClearResponses godoc
// @Summary 清除学生在某练习卷上的作答记录
// @Tags responses
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "学生ID"
// @Param worksheetId path int true "练习卷ID"
// @Success 200 {object} util.Response
// @Router /api/v1/responses/students/{studentId}/worksheets/{worksheetId} [delete]
func (ctrl *ResponseController) ClearResponses(c *gin.Context) {
	worksheetID, err := util.ParseUint(c.Param("worksheetId"))
	if err != nil {
		util.BadRequest(c, "invalid worksheet id")
		return
	}

	deleted, err := ctrl.ScoringService.ClearStudentWorksheetResponses(c.Param("studentId"), worksheetID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"deleted": deleted})
}
