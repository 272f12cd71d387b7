package repository

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jose-c-campos/usc-scheduler/internal/model"
	"github.com/jose-c-campos/usc-scheduler/pkg/redis"
)

// ratingCacheTTL Redis 评分缓存过期时间
const ratingCacheTTL = 24 * time.Hour

// CatalogRepository 课程目录数据访问接口
type CatalogRepository interface {
	// SectionGroups 查询某课程本学期的全部班次，按班次类型分组返回。
	// 组顺序为类型名字典序，保证锚点选择的确定性。
	SectionGroups(ctx context.Context, classCode string) ([][]model.Section, error)
	// RequiredSectionTypes 查询某课程本学期开设的班次类型全集。
	// 查询结果为空时回退为 {"Lecture"}。
	RequiredSectionTypes(ctx context.Context, classCode string) (map[string]struct{}, error)
	// ProfessorRating 查询教授评分。
	// 先按规范化姓名 + 课程码精确匹配（按评论数取最高），
	// 再退回教授姓名的 ILIKE 模糊匹配；查不到的字段保持零值。
	ProfessorRating(ctx context.Context, professorName, courseCode string) (model.Rating, error)
}

type catalogRepo struct {
	db       *gorm.DB
	semester string
	rdb      *redis.Client
}

// NewCatalogRepo 创建 CatalogRepository 实例
func NewCatalogRepo(db *gorm.DB, semester string, rdb *redis.Client) CatalogRepository {
	return &catalogRepo{db: db, semester: semester, rdb: rdb}
}

// sectionRow 班次查询结果行（含经自连接解析出的父班次号）
type sectionRow struct {
	Type                string
	DaysOfWeek          string
	StartTime           string
	EndTime             string
	Location            string
	NumStudentsEnrolled int
	NumSeats            int
	Instructors         string
	SectionNumber       string
	ParentSectionNumber *string
}

func (r *catalogRepo) SectionGroups(ctx context.Context, classCode string) ([][]model.Section, error) {
	var rows []sectionRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT s.type, s.days_of_week, s.start_time, s.end_time,
		       s.location, s.num_students_enrolled, s.num_seats,
		       s.instructors, s.section_number,
		       p.section_number AS parent_section_number
		FROM sections s
		LEFT JOIN sections p ON s.parent_section_id = p.id
		JOIN courses c ON s.course_id = c.id
		WHERE c.code = ? AND c.semester = ?`,
		classCode, r.semester,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byType := make(map[string][]model.Section)
	for _, row := range rows {
		parent := ""
		if row.ParentSectionNumber != nil {
			parent = *row.ParentSectionNumber
		}
		sec := model.NewSection(
			row.Type,
			strings.Fields(row.DaysOfWeek),
			row.StartTime, row.EndTime,
			row.Location,
			row.NumStudentsEnrolled, row.NumSeats,
			row.Instructors, row.SectionNumber, parent,
		)
		byType[row.Type] = append(byType[row.Type], sec)
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	groups := make([][]model.Section, 0, len(types))
	for _, t := range types {
		groups = append(groups, byType[t])
	}
	return groups, nil
}

func (r *catalogRepo) RequiredSectionTypes(ctx context.Context, classCode string) (map[string]struct{}, error) {
	var types []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT s.type
		FROM sections s
		JOIN courses c ON s.course_id = c.id
		WHERE c.code = ? AND c.semester = ?`,
		classCode, r.semester,
	).Scan(&types).Error
	if err != nil {
		return nil, err
	}

	required := make(map[string]struct{}, len(types))
	for _, t := range types {
		if t != "" {
			required[t] = struct{}{}
		}
	}
	// 目录无记录时至少要求 Lecture
	if len(required) == 0 {
		required["Lecture"] = struct{}{}
	}
	return required, nil
}

// profCourseRow 课程级评分查询结果行
type profCourseRow struct {
	CourseQuality    float64
	CourseDifficulty float64
	WouldTakeAgain   float64
	Quality          float64
	Difficulty       float64
}

// profRow 教授汇总评分查询结果行
type profRow struct {
	AvgRating             *float64
	AvgDifficulty         *float64
	WouldTakeAgainPercent *float64
}

func (r *catalogRepo) ProfessorRating(ctx context.Context, professorName, courseCode string) (model.Rating, error) {
	var rating model.Rating

	name := model.CleanInstructorName(professorName)
	if name == "" {
		return rating, nil // 无名可查
	}

	if cached, ok := r.cachedRating(ctx, name, courseCode); ok {
		return cached, nil
	}

	// 1. 课程级精确匹配：姓名与课程码都按"去非字母数字后小写"规范化比较
	var courseRows []profCourseRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(pcr.avg_quality, 0)             AS course_quality,
		       COALESCE(pcr.avg_difficulty, 0)          AS course_difficulty,
		       COALESCE(p.would_take_again_percent, 0)  AS would_take_again,
		       COALESCE(p.avg_rating, 0)                AS quality,
		       COALESCE(p.avg_difficulty, 0)            AS difficulty
		FROM professors p
		JOIN prof_course_ratings pcr ON p.id = pcr.professor_id
		WHERE lower(regexp_replace(p.name, '[^A-Za-z0-9]', '', 'g'))
		      = lower(regexp_replace(?, '[^A-Za-z0-9]', '', 'g'))
		  AND lower(regexp_replace(pcr.course_code, '[^A-Za-z0-9]', '', 'g'))
		      = lower(regexp_replace(?, '[^A-Za-z0-9]', '', 'g'))
		ORDER BY pcr.num_reviews DESC
		LIMIT 1`,
		name, courseCode,
	).Scan(&courseRows).Error
	if err != nil {
		return rating, err
	}
	if len(courseRows) == 1 {
		row := courseRows[0]
		rating = model.Rating{
			Quality:                  row.Quality,
			Difficulty:               row.Difficulty,
			WouldTakeAgain:           row.WouldTakeAgain,
			CourseSpecificQuality:    row.CourseQuality,
			CourseSpecificDifficulty: row.CourseDifficulty,
		}
		r.storeRating(ctx, name, courseCode, rating)
		return rating, nil
	}

	// 2. 退回教授级模糊匹配
	var profRows []profRow
	err = r.db.WithContext(ctx).Raw(`
		SELECT avg_rating, avg_difficulty, would_take_again_percent
		FROM professors
		WHERE name ILIKE ?
		LIMIT 1`,
		"%"+name+"%",
	).Scan(&profRows).Error
	if err != nil {
		return rating, err
	}
	if len(profRows) == 1 {
		row := profRows[0]
		if row.AvgRating != nil {
			rating.Quality = *row.AvgRating
		}
		if row.AvgDifficulty != nil {
			rating.Difficulty = *row.AvgDifficulty
		}
		if row.WouldTakeAgainPercent != nil {
			rating.WouldTakeAgain = *row.WouldTakeAgainPercent
		}
	}

	// 3. 库里没有就保持零值（不做随机兜底）
	r.storeRating(ctx, name, courseCode, rating)
	return rating, nil
}

// ── Redis 读穿缓存（rdb 为 nil 或出错时静默跳过）──

func ratingCacheKey(name, courseCode string) string {
	return "usc:rating:" + model.CanonicalName(name) + ":" + model.CanonicalName(courseCode)
}

func (r *catalogRepo) cachedRating(ctx context.Context, name, courseCode string) (model.Rating, bool) {
	if r.rdb == nil {
		return model.Rating{}, false
	}
	raw, err := r.rdb.Get(ctx, ratingCacheKey(name, courseCode))
	if err != nil || raw == "" {
		return model.Rating{}, false
	}
	var rating model.Rating
	if err := json.Unmarshal([]byte(raw), &rating); err != nil {
		return model.Rating{}, false
	}
	return rating, true
}

func (r *catalogRepo) storeRating(ctx context.Context, name, courseCode string, rating model.Rating) {
	if r.rdb == nil {
		return
	}
	raw, err := json.Marshal(rating)
	if err != nil {
		return
	}
	_ = r.rdb.Set(ctx, ratingCacheKey(name, courseCode), string(raw), ratingCacheTTL)
}
