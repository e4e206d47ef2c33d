package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/locaequip/api-locacao/internal/auth"
	"github.com/locaequip/api-locacao/internal/cliente"
	"github.com/locaequip/api-locacao/internal/contrato"
	"github.com/locaequip/api-locacao/internal/equipamento"
	"github.com/locaequip/api-locacao/internal/notificacao"
	"github.com/locaequip/api-locacao/internal/pagamento"
	"github.com/locaequip/api-locacao/internal/relatorio"
	"github.com/locaequip/api-locacao/internal/usuario"
	"github.com/locaequip/api-locacao/internal/utils"
	"github.com/locaequip/api-locacao/internal/utils/db"
	"github.com/rs/cors"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inicio := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(inicio))
	})
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis do ambiente")
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("Erro ao conectar no banco: ", err)
	}

	// AutoMigrate para todos os modelos
	if err := database.AutoMigrate(
		&usuario.Usuario{},
		&auth.RefreshToken{},
		&cliente.Cliente{},
		&equipamento.Equipamento{},
		&contrato.Contrato{},
		&contrato.ContratoItem{},
		&pagamento.PagamentoMensal{},
		&pagamento.Pagamento{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate: ", err)
	}

	if err := usuario.GarantirAdmin(database, utils.GetEnv("ADMIN_EMAIL", ""), utils.GetEnv("ADMIN_SENHA", "")); err != nil {
		log.Fatal("Erro ao criar administrador inicial: ", err)
	}

	chaves, err := auth.CarregarChavesDoAmbiente()
	if err != nil {
		log.Fatal("Erro ao carregar chaves JWT: ", err)
	}

	relogio := pagamento.RelogioSistema{}
	revalidador := notificacao.NovoRevalidador(
		utils.GetEnv("REVALIDATE_WEBHOOK_URL", ""),
		utils.GetEnv("REVALIDATE_SECRET", ""),
	)
	engine := pagamento.NewEngine(database, relogio, revalidador,
		utils.GetEnvInt("DIA_VENCIMENTO_PADRAO", pagamento.DiaVencimentoPadrao))

	// Handlers
	sessoes := auth.NovasSessoes(database, chaves)
	usuarioHandler := usuario.NewHandler(database, sessoes)
	clienteHandler := cliente.NewHandler(database)
	equipamentoHandler := equipamento.NewHandler(equipamento.NewRepository(database))
	contratoHandler := contrato.NewHandler(database, engine)
	pagamentoHandler := pagamento.NewHandler(engine)
	relatorioHandler := relatorio.NewHandler(database, engine, relogio)

	// Router
	r := mux.NewRouter()
	r.Use(logRequests)

	// Rotas públicas
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.EscreverJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.HandleFunc("/.well-known/jwks.json", chaves.JWKSHandler).Methods("GET")
	r.HandleFunc("/auth/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/auth/refresh", sessoes.Renovar).Methods("POST")
	r.HandleFunc("/auth/logout", sessoes.Logout).Methods("POST")

	api := r.NewRoute().Subrouter()
	api.Use(chaves.MiddlewareAutenticacao)
	admin := func(h http.HandlerFunc) http.Handler { return auth.RequireAdmin(h) }

	// Usuários
	api.Handle("/usuarios", admin(usuarioHandler.Criar)).Methods("POST")
	api.Handle("/usuarios", admin(usuarioHandler.Listar)).Methods("GET")
	api.HandleFunc("/usuarios/me", usuarioHandler.Me).Methods("GET")
	api.HandleFunc("/usuarios/me/senha", usuarioHandler.AlterarSenha).Methods("PUT")

	// Clientes
	api.HandleFunc("/clientes", clienteHandler.CriarCliente).Methods("POST")
	api.HandleFunc("/clientes", clienteHandler.ListarClientes).Methods("GET")
	api.HandleFunc("/clientes/{id}", clienteHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/clientes/{id}", clienteHandler.AtualizarCliente).Methods("PUT")
	api.Handle("/clientes/{id}", admin(clienteHandler.DeletarCliente)).Methods("DELETE")

	// Equipamentos
	api.HandleFunc("/equipamentos", equipamentoHandler.CreateEquipamento).Methods("POST")
	api.HandleFunc("/equipamentos", equipamentoHandler.ListEquipamentos).Methods("GET")
	api.HandleFunc("/equipamentos/{id}", equipamentoHandler.GetEquipamento).Methods("GET")
	api.HandleFunc("/equipamentos/{id}", equipamentoHandler.UpdateEquipamento).Methods("PUT")
	api.HandleFunc("/equipamentos/{id}/status", equipamentoHandler.UpdateStatus).Methods("PATCH")
	api.Handle("/equipamentos/{id}", admin(equipamentoHandler.DeleteEquipamento)).Methods("DELETE")

	// Contratos
	api.HandleFunc("/contratos", contratoHandler.CriarContrato).Methods("POST")
	api.HandleFunc("/contratos", contratoHandler.ListarContratos).Methods("GET")
	api.HandleFunc("/contratos/{id}", contratoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/contratos/{id}", contratoHandler.AtualizarContrato).Methods("PUT")
	api.HandleFunc("/contratos/{id}/cancelar", contratoHandler.CancelarContrato).Methods("POST")
	api.Handle("/contratos/{id}", admin(contratoHandler.DeletarContrato)).Methods("DELETE")

	// Pagamentos mensais e resumos
	api.HandleFunc("/contratos/{id}/pagamentos-mensais", pagamentoHandler.ListarPagamentosMensais).Methods("GET")
	api.HandleFunc("/contratos/{id}/pagamentos-mensais/gerar", pagamentoHandler.GerarPagamentosMensais).Methods("POST")
	api.HandleFunc("/contratos/{id}/pagamentos-mensais/recalcular", pagamentoHandler.RecalcularPagamentosMensais).Methods("POST")
	api.HandleFunc("/pagamentos-mensais/{pid}/pagar", pagamentoHandler.MarcarComoPago).Methods("POST")
	api.HandleFunc("/pagamentos-mensais/{pid}", pagamentoHandler.EditarPagamentoMensal).Methods("PUT")
	api.HandleFunc("/pagamentos", pagamentoHandler.ListarResumos).Methods("GET")
	api.HandleFunc("/pagamentos/atrasados", pagamentoHandler.ListarAtrasados).Methods("GET")

	// Relatórios
	api.HandleFunc("/relatorios/resumo", relatorioHandler.Resumo).Methods("GET")
	api.HandleFunc("/relatorios/pagamentos.xlsx", relatorioHandler.ExportarPagamentos).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   utils.GetEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	porta := utils.GetEnv("PORT", "8080")
	log.Printf("Servidor rodando em http://localhost:%s", porta)
	log.Fatal(http.ListenAndServe(":"+porta, c.Handler(r)))
}
