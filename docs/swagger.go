package docs

// @title Sanctuary 主题推荐服务 API
// @version 1.0
// @description 聚合已发布的文章、排行榜、圆桌与媒体内容，调用生成式模型发现主题连接与聚类
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @schemes http https
