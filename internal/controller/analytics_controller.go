package controller

import (
	"satbank_backend/internal/service"
	"satbank_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	ScoringService *service.ScoringService
}

func NewAnalyticsController(scoringService *service.ScoringService) *AnalyticsController {
	return &AnalyticsController{ScoringService: scoringService}
}

// StudentPerformance godoc
// @Summary 学生整体表现
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "学生ID"
// @Success 200 {object} util.Response{data=model.StudentPerformance}
// @Router /api/v1/analytics/students/{studentId} [get]
func (ctrl *AnalyticsController) StudentPerformance(c *gin.Context) {
	perf, err := ctrl.ScoringService.StudentPerformance(c.Param("studentId"))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, perf)
}

// QuestionPerformance godoc
// @Summary 单题正确率统计
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response{data=model.QuestionPerformance}
// @Router /api/v1/analytics/questions/{id} [get]
func (ctrl *AnalyticsController) QuestionPerformance(c *gin.Context) {
	id, err := util.ParseUint(c.Param("id"))
	if err != nil {
		util.BadRequest(c, "invalid question id")
		return
	}

	perf, err := ctrl.ScoringService.QuestionPerformance(id)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, perf)
}

// WorksheetPerformance godoc
// @Summary 练习卷平均成绩
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id path int true "练习卷ID"
// @Success 200 {object} util.Response{data=model.WorksheetPerformance}
// @Router /api/v1/analytics/worksheets/{id} [get]
func (ctrl *AnalyticsController) WorksheetPerformance(c *gin.Context) {
	id, err := util.ParseUint(c.Param("id"))
	if err != nil {
		util.BadRequest(c, "invalid worksheet id")
		return
	}

	perf, err := ctrl.ScoringService.WorksheetPerformance(id)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, perf)
}

// Comparative godoc
// @Summary 全体学生对比分析
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.ComparativeAnalytics}
// @Router /api/v1/analytics/comparative [get]
func (ctrl *AnalyticsController) Comparative(c *gin.Context) {
	analytics, err := ctrl.ScoringService.ComparativeAnalytics()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, analytics)
}

// Mastery godoc
// @Summary 学生科目掌握程度
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "学生ID"
// @Success 200 {object} util.Response{data=model.MasteryReport}
// @Router /api/v1/analytics/students/{studentId}/mastery [get]
func (ctrl *AnalyticsController) Mastery(c *gin.Context) {
	report, err := ctrl.ScoringService.MasteryLevels(c.Param("studentId"))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, report)
}

// Students godoc
// @Summary 有作答记录的学生列表
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]string}
// @Router /api/v1/analytics/students [get]
func (ctrl *AnalyticsController) Students(c *gin.Context) {
	students, err := ctrl.ScoringService.AllStudents()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, students)
}
