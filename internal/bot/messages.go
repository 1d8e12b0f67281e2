package bot

// User-facing texts. Messages sent with parse_mode=MarkdownV2 carry their
// escaping inline; plain messages do not.

const (
	msgAccessRequested = "Здравствуйте! Доступ к этому боту ограничен. \n\nВаша заявка отправлена администратору на рассмотрение. Пожалуйста, ожидайте."
	msgAccessPending   = "Ваша заявка уже на рассмотрении. Пожалуйста, ожидайте."
	msgAccessApproved  = "Поздравляю! Ваша заявка одобрена. Теперь вы можете пользоваться ботом. Нажмите /start для начала."
	msgAccessRejected  = "К сожалению, ваша заявка на доступ к боту была отклонена администратором."
	msgNoPermission    = "У вас нет прав для этого действия."
	msgNoAccess        = "У вас нет доступа к этому боту."
)

const (
	msgUnsupportedFile   = "Пожалуйста, отправьте файл в формате **\\.fb2** или **\\.fb2\\.zip**\\."
	msgFileDownloadError = "Не удалось скачать файл\\. Попробуйте еще раз\\."
	msgBrokenZip         = "Это поврежденный ZIP\\-архив\\."
	msgNoFB2InArchive    = "Не удалось извлечь FB2\\-файл из архива\\."
	msgBookDeleted       = "Книга успешно удалена\\."
	msgSessionGone       = "Сессия чтения завершена\\. Пожалуйста, выберите книгу из списка или отправьте новую\\."
	msgNoBooks           = "У вас пока нет сохраненных книг\\. Отправьте мне FB2\\-файл, чтобы начать читать\\. \n\nВы можете воспользоваться поиском\\, найти книгу и начать ее читать в данном боте \\(одновременно можно читать до 10 книг\\)\\."
	msgMyBooksHeader     = "Вот ваши книги\\. Выберите одну, чтобы продолжить читать или удалить\\:"
)

const (
	msgBookNotFound     = "Книга не найдена."
	msgGotoPagePrompt   = "Введите номер страницы, на которую хотите перейти:"
	msgGotoPageNotNum   = "Введите корректный номер страницы (число)."
	msgSearchNoResults  = "По вашему запросу ничего не найдено. Попробуйте еще раз."
	msgSearchNoCriteria = "Вы не ввели ни одного критерия для поиска. Попробуйте снова."
	msgSearchNoQuery    = "Вы не ввели запрос для поиска. Попробуйте еще раз."
	msgSearchRunning    = "Ищу книги по вашим критериям..."
	msgResultsExpired   = "Ошибка: Результаты поиска устарели."
	msgSearchAborted    = "Поиск прерван."
	msgDownloadStarting = "Начинаю скачивание..."
	msgDownloadError    = "Произошла ошибка при скачивании файла."
	msgSendError        = "Произошла ошибка при отправке файла. Возможно, он слишком большой."
	msgAddBookError     = "Произошла ошибка при добавлении книги. Пожалуйста, попробуйте еще раз."
	msgBookSent         = "Книга отправлена. \nЗагрузите данный файл на ваше устройство и откройте читалкой FB2 файлов. \n\n" +
		"Также вы можете выбрать другую книгу из списка выше, либо начать новый поиск.\n\n" +
		"Или воспользуйтесь встроенным ридером:"
)

const (
	msgSeqSearchAuthor = "Введите имя автора (можно не полностью).\nДля пропуска введите `-`."
	msgSeqSearchSeries = "Введите название серии (можно не полностью).\nДля пропуска введите `-`."
	msgSeqSearchSerNo  = "Введите номер книги в серии (можно не полностью).\nНапример, `1` или `3-4`. Для пропуска введите `-`."
	msgSeqSearchYear   = "Введите год издания книги (можно не полностью).\nНапример, `2024`. Для пропуска введите `-`."
	msgSeqSearchTitle  = "Введите название книги (можно не полностью).\nДля пропуска введите `-`."
	msgSmartSearch     = "Введите ваш запрос в одном сообщении.\nНапример: `Глуховский Метро 2033` или `Метро #3`."
)

const (
	msgNoApprovedUsers = "Список одобренных пользователей пуст."
	msgApprovedHeader  = "Одобренные пользователи:"
	msgNoPendingUsers  = "Нет новых заявок на одобрение."
	msgPendingHeader   = "Заявки на одобрение:"
	msgAlreadyDecided  = "Пользователь уже одобрен или его заявка устарела."
	msgNotPending      = "Пользователь уже не в списке ожидающих."
)

const msgReaderHelp = "📖 Как читать файлы формата FB2 \n\n" +
	"Веб-приложение:\n Используйте онлайн-ридер для быстрого доступа к файлам FB2 без необходимости установки ПО: [ссылка](https://omnireader.ru/) \n\n" +
	"Мобильные платформы (Android):\n Для удобного чтения на мобильных устройствах рекомендуется приложение FBReader Premium: [ссылка](https://t.me/files_to_you/7/8)\n\n" +
	"Десктопные решения (Windows/Linux/macOS):\n Для настольных компьютеров доступна версия FBReader, которую можно загрузить с официального сайта: [ссылка](https://fbreader.org/windows)\n\n" +
	"Интеграция с Telegram:\n Вы также можете использовать встроенный ридер этого бота, или специализированные боты-читалки для мгновенного доступа к файлам: [ссылка](https://t.me/Book_Reader_TG_bot)\n\n"
