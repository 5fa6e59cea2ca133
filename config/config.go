package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
type Configuration struct {
	InitMode              bool   `env:"INITMODE" envDefault:"false"`               // Chế độ khởi tạo dữ liệu mặc định
	Address               string `env:"ADDRESS" envDefault:"8080"`                 // Cổng lắng nghe của server
	JwtSecret             string `env:"JWT_SECRET,required"`                       // Bí mật ký JWT
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                   // Tên cơ sở dữ liệu
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting

	// Text-completion service (LLM)
	AI_Endpoint       string `env:"AI_ENDPOINT,required"`                // URL endpoint chat-completions
	AI_APIKey         string `env:"AI_API_KEY,required"`                 // API key của dịch vụ completion
	AI_Model          string `env:"AI_MODEL" envDefault:"gpt-4o-mini"`   // Model mặc định
	AI_TimeoutSeconds int    `env:"AI_TIMEOUT_SECONDS" envDefault:"60"`  // Timeout cho mỗi lần gọi completion
	AI_MaxTokens      int    `env:"AI_MAX_TOKENS" envDefault:"4096"`     // Giới hạn token đầu ra

	// Tài khoản admin khởi tạo (chỉ dùng khi INITMODE=true và chưa có admin nào)
	Admin_Email    string `env:"ADMIN_EMAIL"`
	Admin_Password string `env:"ADMIN_PASSWORD"`

	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key (.key)

	// SMTP Notification Configuration (optional - gửi mail khi admin gắn cờ kiểm duyệt)
	SMTP_Host       string `env:"SMTP_HOST"`                 // SMTP host (rỗng = tắt notification)
	SMTP_Port       int    `env:"SMTP_PORT" envDefault:"587"`
	SMTP_Username   string `env:"SMTP_USERNAME"`
	SMTP_Password   string `env:"SMTP_PASSWORD"`
	SMTP_From       string `env:"SMTP_FROM"`       // Địa chỉ gửi
	AdminAlertEmail string `env:"ADMIN_ALERT_EMAIL"` // Địa chỉ nhận cảnh báo kiểm duyệt
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env bằng cách đi ngược lên thư mục cha
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			envPath := filepath.Join(envDir, fmt.Sprintf("%s.env", env))
			return envPath
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env tương ứng với GO_ENV
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
