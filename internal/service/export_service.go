package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sudhan-ops/onboarding-sub001/internal/dto"
	"github.com/sudhan-ops/onboarding-sub001/internal/model"
	"github.com/sudhan-ops/onboarding-sub001/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoRecords    = errors.New("没有符合条件的入职记录")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

const exportMaxRows = 10000

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 一次最多导出 10000 条，超出请按站点 / 状态分批
type ExportService interface {
	// ExportOnboarding 按过滤条件导出入职记录为 Excel
	ExportOnboarding(ctx context.Context, req *dto.OnboardingListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportOnboarding(ctx context.Context, req *dto.OnboardingListRequest) (*bytes.Buffer, string, error) {
	filter := repository.OnboardingFilter{
		Status:  req.Status,
		SiteID:  req.SiteID,
		Keyword: req.Keyword,
	}
	recs, _, err := s.repo.Onboarding.List(ctx, filter, 0, exportMaxRows)
	if err != nil {
		s.logger.Error("查询入职记录失败", zap.Error(err))
		return nil, "", err
	}
	if len(recs) == 0 {
		return nil, "", ErrExportNoRecords
	}

	// 站点 ID → 名称映射
	sites, _, err := s.repo.Site.List(ctx, 0, 1000)
	if err != nil {
		return nil, "", err
	}
	siteNames := make(map[string]string, len(sites))
	for _, site := range sites {
		siteNames[site.SiteID] = site.Name
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "入职记录"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"记录编号", "姓名", "手机号", "邮箱", "性别", "出生日期",
		"站点", "部门", "岗位", "入职日期", "月薪",
		"银行", "账号", "IFSC", "UAN", "状态", "提交时间",
	}
	widths := []float64{26, 16, 14, 24, 8, 12, 16, 14, 14, 12, 10, 16, 20, 14, 16, 10, 20}
	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, cell("A", 1), cell(colName(len(headers)-1), 1), headerStyle)

	row := 2
	for i := range recs {
		rec := &recs[i]
		values := exportRow(rec, siteNames)
		for c, v := range values {
			f.SetCellValue(sheetName, cell(colName(c), row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("入职记录_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

func exportRow(rec *model.OnboardingRecord, siteNames map[string]string) []any {
	siteName := ""
	if rec.SiteID != nil {
		siteName = siteNames[*rec.SiteID]
	}
	submitted := ""
	if rec.SubmittedAt != nil {
		submitted = rec.SubmittedAt.Format("2006-01-02 15:04")
	}
	return []any{
		rec.RecordID,
		rec.Personal.FirstName + " " + rec.Personal.LastName,
		rec.Personal.Mobile,
		rec.Personal.Email,
		genderLabel(rec.Personal.Gender),
		rec.Personal.DOB,
		siteName,
		rec.Organization.Department,
		rec.Organization.Designation,
		rec.Organization.DateOfJoining,
		rec.Organization.Salary.String(),
		rec.Bank.BankName,
		rec.Bank.AccountNumber,
		rec.Bank.IFSC,
		rec.Uan.UANNumber,
		statusLabel(rec.Status),
		submitted,
	}
}

func genderLabel(gender string) string {
	switch gender {
	case "male":
		return "男"
	case "female":
		return "女"
	default:
		return ""
	}
}

func statusLabel(status string) string {
	switch status {
	case model.RecordStatusDraft:
		return "草稿"
	case model.RecordStatusPending:
		return "待审核"
	case model.RecordStatusApproved:
		return "已通过"
	case model.RecordStatusRejected:
		return "已驳回"
	default:
		return status
	}
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
