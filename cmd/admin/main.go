package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"hiregate/internal/record"
	"hiregate/internal/schema"
	"hiregate/internal/sheetstore"
)

// 初始化工具：建立工作簿（三张表及表头），并写入初始管理员账号。
func main() {
	var (
		email    = flag.String("email", "", "初始管理员 email（必填）")
		name     = flag.String("name", "Administrator", "初始管理员显示名")
		workbook = flag.String("workbook", "", "工作簿路径（可选，默认读 SHEET_WORKBOOK_PATH）")
	)
	flag.Parse()

	adminEmail := strings.ToLower(strings.TrimSpace(*email))
	if adminEmail == "" {
		log.Fatal("missing required flag: --email")
	}

	path := strings.TrimSpace(*workbook)
	if path == "" {
		path = strings.TrimSpace(os.Getenv("SHEET_WORKBOOK_PATH"))
	}
	if path == "" {
		path = "data/hiregate.xlsx"
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := sheetstore.CreateWorkbook(path, &schema.Users, &schema.Resumes, &schema.Settings); err != nil {
			log.Fatalf("create workbook: %v", err)
		}
		log.Printf("workbook created at %s", path)
	} else if err != nil {
		log.Fatalf("stat workbook: %v", err)
	}

	store := sheetstore.NewExcelStore(path, logger)
	ctx := context.Background()

	for _, table := range []*schema.Table{&schema.Users, &schema.Resumes, &schema.Settings} {
		missing, err := store.ValidateHeaders(ctx, table)
		if err != nil {
			log.Fatalf("validate %s headers: %v", table.Name, err)
		}
		if len(missing) > 0 {
			log.Fatalf("table %s is missing columns: %s", table.Name, strings.Join(missing, ", "))
		}
	}

	switch _, err := store.FindRow(ctx, &schema.Users, adminEmail); {
	case err == nil:
		log.Fatalf("user %q already exists", adminEmail)
	case sheetstore.IsNotFound(err):
	default:
		log.Fatalf("query user: %v", err)
	}

	password, err := generateRandomPassword(24)
	if err != nil {
		log.Fatalf("generate password: %v", err)
	}

	row, err := schema.Users.NewRow(map[string]string{
		"email":         adminEmail,
		"password":      password,
		"name":          strings.TrimSpace(*name),
		"role":          record.RoleAdmin,
		"creator_email": "system",
		"created_at":    time.Now().Format("2006-01-02"),
	})
	if err != nil {
		log.Fatalf("build user row: %v", err)
	}
	if err := store.AppendRow(ctx, &schema.Users, row); err != nil {
		log.Fatalf("append user row: %v", err)
	}

	fmt.Printf("已建立初始管理员账号：\n")
	fmt.Printf("Email: %s\n", adminEmail)
	fmt.Printf("初始密码: %s\n", password)
	fmt.Printf("提示：请立即登录并修改密码（该密码仅显示一次）。\n")
}

func generateRandomPassword(bytesLen int) (string, error) {
	if bytesLen <= 0 {
		bytesLen = 24
	}
	buf := make([]byte, bytesLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
